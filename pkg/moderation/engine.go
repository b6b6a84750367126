package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/ModerationAI/modcore/pkg/analyzers"
	"github.com/ModerationAI/modcore/pkg/normalizer"
	"github.com/ModerationAI/modcore/pkg/standards"
	"github.com/ModerationAI/modcore/pkg/types"
)

const (
	defaultMaxConcurrent = 16
	defaultOverallBudget = 5 * time.Second
)

// Options tune an Engine. Zero values fall back to defaults.
type Options struct {
	Policy              AggregationPolicy
	MediumHideStandards []string
	MaxConcurrent       int64
	OverallBudget       time.Duration
}

// Engine evaluates comments. It is safe for concurrent use; every
// evaluation is independent and shares only read-only tables.
type Engine struct {
	logger    *logrus.Logger
	registry  *analyzers.Registry
	standards *standards.Engine
	policy    AggregationPolicy
	resolver  *Resolver
	gate      *semaphore.Weighted
	budget    time.Duration

	now   func() time.Time
	newID func() string
}

func NewEngine(logger *logrus.Logger, registry *analyzers.Registry, standardsEngine *standards.Engine, opts Options) *Engine {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	budget := opts.OverallBudget
	if budget <= 0 {
		budget = defaultOverallBudget
	}
	mediumHide := opts.MediumHideStandards
	if mediumHide == nil {
		mediumHide = []string{standards.Spam, standards.Safety}
	}
	return &Engine{
		logger:    logger,
		registry:  registry,
		standards: standardsEngine,
		policy:    opts.Policy,
		resolver:  NewResolver(mediumHide),
		gate:      semaphore.NewWeighted(maxConcurrent),
		budget:    budget,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func validate(comment types.Comment) error {
	if strings.TrimSpace(comment.ID) == "" {
		return fmt.Errorf("%w: missing comment id", types.ErrInvalidComment)
	}
	if strings.TrimSpace(comment.AuthorID) == "" {
		return fmt.Errorf("%w: missing author id", types.ErrInvalidComment)
	}
	return nil
}

// Moderate evaluates one comment and returns the decision. Analyzer
// failures degrade the evaluation, they never fail it; the only errors
// are invalid input and caller cancellation before evaluation started.
func (e *Engine) Moderate(ctx context.Context, comment types.Comment) (*types.ModerationResult, error) {
	if err := validate(comment); err != nil {
		return nil, err
	}

	if err := e.gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquiring evaluation slot: %w", err)
	}
	defer e.gate.Release(1)

	ctx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	started := e.now()
	text := normalizer.Normalize(comment.Text)

	run := e.registry.Run(ctx, comment, text)
	violations := e.standards.Evaluate(comment, text, run.Findings)
	sortViolations(violations)

	severity, escalation := aggregate(violations, e.policy)
	action := e.resolver.Resolve(severity, violations)

	total := len(e.registry.Names())
	healthy := total - len(run.Degraded)
	confidence := computeConfidence(violations, healthy, total)
	reasoning := buildReasoning(action, severity, escalation, violations, run.Degraded)

	result := &types.ModerationResult{
		EvaluationID:      e.newID(),
		CommentID:         comment.ID,
		PlatformID:        comment.PlatformID,
		Action:            action,
		Violations:        violations,
		OverallSeverity:   severity,
		EscalationReason:  escalation,
		Confidence:        confidence,
		Degraded:          len(run.Degraded) > 0,
		DegradedAnalyzers: run.Degraded,
		Reasoning:         reasoning,
		EvaluatedAt:       started,
	}

	e.logger.WithFields(logrus.Fields{
		"evaluation_id": result.EvaluationID,
		"comment_id":    comment.ID,
		"action":        action,
		"severity":      severity,
		"violations":    len(violations),
		"degraded":      result.Degraded,
		"duration_ms":   e.now().Sub(started).Milliseconds(),
	}).Info("comment evaluated")

	return result, nil
}

// ModerateBatch evaluates comments sequentially, preserving input
// order. One invalid comment fails the batch before any side effects;
// the concurrency gate still bounds evaluations when callers run
// batches in parallel.
func (e *Engine) ModerateBatch(ctx context.Context, comments []types.Comment) ([]*types.ModerationResult, error) {
	for i, c := range comments {
		if err := validate(c); err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}
	}
	results := make([]*types.ModerationResult, 0, len(comments))
	for _, c := range comments {
		result, err := e.Moderate(ctx, c)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

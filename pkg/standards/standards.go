// Package standards maps analyzer findings and text properties onto the
// five fixed moderation standards, producing violations. The standard
// table is immutable once built; reload means building a new table and
// swapping it into a new engine.
package standards

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/types"
)

// Standard names. The set is fixed; configuration can disable a
// standard or tune its metrics, never invent a sixth.
const (
	Safety     = "safety"
	Quality    = "quality"
	Spam       = "spam"
	Policy     = "policy"
	Engagement = "engagement"
)

// Input is everything a metric predicate may look at.
type Input struct {
	Comment  types.Comment
	Text     types.NormalizedText
	Findings []types.Finding
}

// Match is a positive predicate result. Severity, when set, overrides
// the metric's base severity (e.g. direct threats escalate to CRITICAL
// for group-directed violence). Confidence carries the maximum
// confidence of the findings backing the match; zero means the match
// derives purely from deterministic text properties.
type Match struct {
	Evidence   string
	Severity   types.Severity
	Confidence float64
}

// Predicate evaluates one metric. Predicates are pure and total: a
// predicate that cannot determine relevance (e.g. missing optional
// context) returns no match, never an error.
type Predicate func(in Input) (Match, bool)

// Metric is a single testable rule within a standard.
type Metric struct {
	ID           string
	Description  string
	BaseSeverity types.Severity
	Predicate    Predicate
}

// Standard is a named, ordered list of metrics. Shared and read-only
// after construction, safe for concurrent evaluations.
type Standard struct {
	Name    string
	Metrics []Metric
}

// Engine evaluates comments against a fixed standard table.
type Engine struct {
	logger    *logrus.Logger
	standards []Standard
}

func NewEngine(logger *logrus.Logger, standards []Standard) (*Engine, error) {
	for _, s := range standards {
		seen := make(map[string]bool, len(s.Metrics))
		for _, m := range s.Metrics {
			if seen[m.ID] {
				return nil, fmt.Errorf("standard %s: duplicate metric id %s", s.Name, m.ID)
			}
			seen[m.ID] = true
			if m.Predicate == nil {
				return nil, fmt.Errorf("standard %s: metric %s has no predicate", s.Name, m.ID)
			}
		}
	}
	return &Engine{logger: logger, standards: standards}, nil
}

// Evaluate runs every enabled metric in stable order and emits one
// violation per positive match. All matches within a standard are
// retained, not just the first.
func (e *Engine) Evaluate(comment types.Comment, text types.NormalizedText, findings []types.Finding) []types.Violation {
	in := Input{Comment: comment, Text: text, Findings: findings}

	var violations []types.Violation
	for _, standard := range e.standards {
		for _, metric := range standard.Metrics {
			match, ok := metric.Predicate(in)
			if !ok {
				continue
			}
			severity := metric.BaseSeverity
			if match.Severity != "" {
				severity = match.Severity
			}
			violations = append(violations, types.Violation{
				Standard:   standard.Name,
				Metric:     metric.ID,
				Severity:   severity,
				Evidence:   match.Evidence,
				Confidence: match.Confidence,
			})
		}
	}

	if len(violations) > 0 && e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"comment_id": comment.ID,
			"violations": len(violations),
		}).Debug("standards evaluation produced violations")
	}

	return violations
}

// Standards returns the engine's table for auditing. Callers must not
// mutate it.
func (e *Engine) Standards() []Standard {
	return e.standards
}

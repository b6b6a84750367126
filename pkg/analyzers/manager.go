// Package analyzers owns the set of registered analyzers and runs them
// concurrently against one comment with per-analyzer timeouts and
// partial-failure tolerance.
package analyzers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/types"
)

// RunResult is the fan-in product of one evaluation: deduplicated,
// deterministically ordered findings plus the analyzers that contributed
// nothing.
type RunResult struct {
	Findings []types.Finding
	Degraded []types.DegradedAnalyzer
}

// Registry holds the registered analyzers. Registration happens at
// startup; Run only reads, so concurrent evaluations share one Registry.
type Registry struct {
	mu        sync.RWMutex
	logger    *logrus.Logger
	analyzers map[string]analyzeriface.Analyzer
	order     []string
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		logger:    logger,
		analyzers: make(map[string]analyzeriface.Analyzer),
	}
}

func (r *Registry) Register(a analyzeriface.Analyzer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := a.Name()
	if _, exists := r.analyzers[name]; exists {
		return fmt.Errorf("analyzer %s already registered", name)
	}
	r.analyzers[name] = a
	r.order = append(r.order, name)
	return nil
}

// Names returns the registered analyzer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

type analyzerResult struct {
	name     string
	findings []types.Finding
	err      error
}

// Run dispatches all registered analyzers concurrently and blocks until
// each has returned or timed out, or the overall context deadline
// expires. A slow analyzer cannot stall the others, but the run waits up
// to its own timeout budget for it. Findings are deduplicated on
// (analyzer, kind, evidence) and sorted by (standard relevance desc,
// confidence desc) so downstream tie-breaks are deterministic regardless
// of completion order.
func (r *Registry) Run(ctx context.Context, comment types.Comment, text types.NormalizedText) RunResult {
	r.mu.RLock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	analyzers := make(map[string]analyzeriface.Analyzer, len(r.analyzers))
	for k, v := range r.analyzers {
		analyzers[k] = v
	}
	r.mu.RUnlock()

	resultChan := make(chan analyzerResult, len(names))

	var wg sync.WaitGroup
	for _, name := range names {
		a := analyzers[name]
		wg.Add(1)
		go func(a analyzeriface.Analyzer) {
			defer wg.Done()
			resultChan <- r.runOne(ctx, a, comment, text)
		}(a)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var (
		findings []types.Finding
		degraded []types.DegradedAnalyzer
		returned = make(map[string]bool, len(names))
	)

	consume := func(res analyzerResult) {
		returned[res.name] = true
		if res.err != nil {
			r.logger.WithFields(logrus.Fields{
				"analyzer":   res.name,
				"comment_id": comment.ID,
			}).WithError(res.err).Warn("analyzer degraded")
			degraded = append(degraded, types.DegradedAnalyzer{
				Name:   res.name,
				Reason: degradationReason(res.err),
			})
			return
		}
		findings = append(findings, res.findings...)
	}

collect:
	for {
		select {
		case res, ok := <-resultChan:
			if !ok {
				break collect
			}
			consume(res)
		case <-ctx.Done():
			// Overall evaluation ceiling. Results that completed before
			// the ceiling may still sit buffered in the channel; drain
			// them before marking the remainder degraded.
		drain:
			for {
				select {
				case res, ok := <-resultChan:
					if !ok {
						break drain
					}
					consume(res)
				default:
					break drain
				}
			}
			for _, name := range names {
				if !returned[name] {
					degraded = append(degraded, types.DegradedAnalyzer{
						Name:   name,
						Reason: "evaluation deadline exceeded",
					})
				}
			}
			break collect
		}
	}

	findings = dedupeFindings(findings)
	sortFindings(findings)
	sort.Slice(degraded, func(i, j int) bool { return degraded[i].Name < degraded[j].Name })

	return RunResult{Findings: findings, Degraded: degraded}
}

// runOne applies the analyzer's own timeout budget. The analyzer runs in
// a separate goroutine so an implementation that ignores its context
// cannot hold up the barrier past its deadline.
func (r *Registry) runOne(
	ctx context.Context,
	a analyzeriface.Analyzer,
	comment types.Comment,
	text types.NormalizedText,
) analyzerResult {
	budget := a.TimeoutBudget()
	if budget <= 0 {
		budget = DefaultTimeoutBudget
	}
	actx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	done := make(chan analyzerResult, 1)
	go func() {
		findings, err := a.Analyze(actx, comment, text)
		done <- analyzerResult{name: a.Name(), findings: findings, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && actx.Err() != nil {
			res.err = actx.Err()
		}
		if res.err != nil {
			res.err = &types.AnalyzerError{Analyzer: res.name, Err: res.err}
		}
		return res
	case <-actx.Done():
		err := actx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = types.ErrAnalyzerTimeout
		}
		return analyzerResult{name: a.Name(), err: &types.AnalyzerError{Analyzer: a.Name(), Err: err}}
	}
}

// DefaultTimeoutBudget applies when an analyzer reports no budget of its
// own.
const DefaultTimeoutBudget = 2 * time.Second

func degradationReason(err error) string {
	switch {
	case errors.Is(err, types.ErrAnalyzerTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, types.ErrAdmissionDenied):
		return "admission denied"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "failure"
	}
}

func dedupeFindings(findings []types.Finding) []types.Finding {
	if len(findings) < 2 {
		return findings
	}
	seen := make(map[string]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		key := f.Analyzer + "\x00" + f.Kind + "\x00" + f.Evidence
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

func sortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := KindRelevance(findings[i].Kind), KindRelevance(findings[j].Kind)
		if ri != rj {
			return ri > rj
		}
		if findings[i].Confidence != findings[j].Confidence {
			return findings[i].Confidence > findings[j].Confidence
		}
		if findings[i].Analyzer != findings[j].Analyzer {
			return findings[i].Analyzer < findings[j].Analyzer
		}
		return findings[i].Kind < findings[j].Kind
	})
}

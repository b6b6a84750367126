package moderation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ModerationAI/modcore/pkg/types"
)

const minDegradedConfidence = 0.1

// sortViolations orders violations by severity descending, then by
// standard and metric for a stable, reproducible result payload.
func sortViolations(violations []types.Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Severity.Rank() != violations[j].Severity.Rank() {
			return violations[i].Severity.Rank() > violations[j].Severity.Rank()
		}
		if violations[i].Standard != violations[j].Standard {
			return violations[i].Standard < violations[j].Standard
		}
		return violations[i].Metric < violations[j].Metric
	})
}

// buildReasoning assembles the structured explanation for a decision.
// Violations must already be sorted; the breakdown groups them per
// standard preserving that order.
func buildReasoning(action types.ModerationAction, severity types.Severity, escalation string, violations []types.Violation, degraded []types.DegradedAnalyzer) types.Reasoning {
	if len(violations) == 0 {
		summary := fmt.Sprintf("%s: no standards violated", action)
		if len(degraded) > 0 {
			summary += fmt.Sprintf(" (%d analyzers unavailable)", len(degraded))
		}
		return types.Reasoning{Summary: summary}
	}

	byStandard := make(map[string][]types.Violation)
	var order []string
	metrics := make([]string, 0, len(violations))
	for _, v := range violations {
		if _, seen := byStandard[v.Standard]; !seen {
			order = append(order, v.Standard)
		}
		byStandard[v.Standard] = append(byStandard[v.Standard], v)
		metrics = append(metrics, v.Metric)
	}

	breakdown := make([]types.StandardBreakdown, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, types.StandardBreakdown{
			Standard:   name,
			Violations: byStandard[name],
		})
	}

	summary := fmt.Sprintf("%s: %s severity from %d violation(s) across %d standard(s): %s",
		action, severity, len(violations), len(order), strings.Join(metrics, ", "))
	if escalation != "" {
		summary += "; " + escalation
	}
	if len(degraded) > 0 {
		summary += fmt.Sprintf(" (%d analyzers unavailable)", len(degraded))
	}

	return types.Reasoning{Summary: summary, Standards: breakdown}
}

// computeConfidence derives the decision confidence. The most severe
// violations present dominate: the confidence is the maximum analyzer
// confidence backing them, or 1.0 when every such violation derives
// from deterministic text metrics. The overall severity may sit above
// any single violation when escalation rules compound, so the anchor is
// the top violation severity, not the aggregate. Degraded evaluations
// scale the confidence by the fraction of analyzers that completed,
// never below a small floor.
//
// Violations must already be sorted by severity descending.
func computeConfidence(violations []types.Violation, healthy, total int) float64 {
	confidence := 1.0
	if len(violations) > 0 {
		top := violations[0].Severity
		best := 0.0
		for _, v := range violations {
			if v.Severity != top {
				continue
			}
			if v.Confidence > best {
				best = v.Confidence
			}
		}
		if best > 0 {
			confidence = best
		}
	}

	if total > 0 && healthy < total {
		confidence *= float64(healthy) / float64(total)
		if confidence < minDegradedConfidence {
			confidence = minDegradedConfidence
		}
	}
	return confidence
}

// Package moderation orchestrates one comment evaluation end to end:
// normalization, parallel analysis, standards evaluation, severity
// aggregation, action resolution and reasoning assembly.
package moderation

import (
	"fmt"
	"sort"

	"github.com/ModerationAI/modcore/pkg/types"
)

// AggregationPolicy tunes the escalation thresholds. Zero values fall
// back to the defaults.
type AggregationPolicy struct {
	CompoundHighStandards int
	MediumVolumeThreshold int
}

const (
	defaultCompoundHighStandards = 2
	defaultMediumVolumeThreshold = 3
)

func (p AggregationPolicy) compoundHigh() int {
	if p.CompoundHighStandards > 0 {
		return p.CompoundHighStandards
	}
	return defaultCompoundHighStandards
}

func (p AggregationPolicy) mediumVolume() int {
	if p.MediumVolumeThreshold > 0 {
		return p.MediumVolumeThreshold
	}
	return defaultMediumVolumeThreshold
}

// aggregate folds all violations into one overall severity. Rules are
// evaluated in strict order; the first that applies wins and its
// reason string is recorded on the result.
func aggregate(violations []types.Violation, policy AggregationPolicy) (types.Severity, string) {
	if len(violations) == 0 {
		return types.SeverityNone, ""
	}

	highStandards := make(map[string]bool)
	mediumCount := 0
	top := types.SeverityNone

	for _, v := range violations {
		if v.Severity.Rank() > top.Rank() {
			top = v.Severity
		}
		switch v.Severity {
		case types.SeverityCritical:
			return types.SeverityCritical, fmt.Sprintf("critical violation of %s standard (%s)", v.Standard, v.Metric)
		case types.SeverityHigh:
			highStandards[v.Standard] = true
		case types.SeverityMedium:
			mediumCount++
		}
	}

	if len(highStandards) >= policy.compoundHigh() {
		names := make([]string, 0, len(highStandards))
		for s := range highStandards {
			names = append(names, s)
		}
		sort.Strings(names)
		return types.SeverityCritical, fmt.Sprintf("high-severity violations across %d standards: %v", len(names), names)
	}

	if top == types.SeverityHigh {
		return types.SeverityHigh, "high-severity violation"
	}

	if mediumCount >= policy.mediumVolume() {
		return types.SeverityHigh, fmt.Sprintf("%d medium-severity violations compound to high", mediumCount)
	}

	if top == types.SeverityMedium {
		return types.SeverityMedium, ""
	}
	if top == types.SeverityLow {
		return types.SeverityLow, ""
	}
	return types.SeverityNone, ""
}

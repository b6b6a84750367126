package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ModerationAI/modcore/pkg/types"
)

func TestSeverity_RankOrdering(t *testing.T) {
	ordered := []types.Severity{
		types.SeverityNone,
		types.SeverityLow,
		types.SeverityMedium,
		types.SeverityHigh,
		types.SeverityCritical,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank())
	}
}

func TestSeverity_UnknownRanksBelowNone(t *testing.T) {
	assert.Less(t, types.Severity("weird").Rank(), types.SeverityNone.Rank())
}

func TestAction_RankOrdering(t *testing.T) {
	ordered := []types.ModerationAction{
		types.ActionApprove,
		types.ActionFlag,
		types.ActionHide,
		types.ActionRemove,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank())
	}
}

func TestModerationResult_HasViolations(t *testing.T) {
	var r types.ModerationResult
	assert.False(t, r.HasViolations())

	r.Violations = []types.Violation{{Standard: "spam", Metric: "promotional", Severity: types.SeverityMedium}}
	assert.True(t, r.HasViolations())
	assert.False(t, r.IsSevere())

	r.Violations = append(r.Violations, types.Violation{Standard: "safety", Metric: "direct_threats", Severity: types.SeverityHigh})
	assert.True(t, r.IsSevere())
}

package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ModerationAI/modcore/pkg/types"
)

func TestAggregate_NoViolations(t *testing.T) {
	severity, reason := aggregate(nil, AggregationPolicy{})
	assert.Equal(t, types.SeverityNone, severity)
	assert.Empty(t, reason)
}

func TestAggregate_SingleCriticalShortCircuits(t *testing.T) {
	severity, reason := aggregate([]types.Violation{
		{Standard: "safety", Metric: "hate_speech", Severity: types.SeverityCritical},
		{Standard: "spam", Metric: "link_density", Severity: types.SeverityHigh},
	}, AggregationPolicy{})
	assert.Equal(t, types.SeverityCritical, severity)
	assert.Contains(t, reason, "critical violation")
	assert.Contains(t, reason, "safety")
}

func TestAggregate_HighAcrossStandardsCompounds(t *testing.T) {
	severity, reason := aggregate([]types.Violation{
		{Standard: "safety", Metric: "direct_threats", Severity: types.SeverityHigh},
		{Standard: "spam", Metric: "link_density", Severity: types.SeverityHigh},
	}, AggregationPolicy{})
	assert.Equal(t, types.SeverityCritical, severity)
	assert.Contains(t, reason, "across 2 standards")
}

func TestAggregate_HighWithinOneStandardDoesNotCompound(t *testing.T) {
	severity, _ := aggregate([]types.Violation{
		{Standard: "spam", Metric: "link_density", Severity: types.SeverityHigh},
		{Standard: "spam", Metric: "repetition", Severity: types.SeverityHigh},
	}, AggregationPolicy{})
	assert.Equal(t, types.SeverityHigh, severity)
}

func TestAggregate_MediumVolumeEscalates(t *testing.T) {
	severity, reason := aggregate([]types.Violation{
		{Standard: "spam", Metric: "promotional", Severity: types.SeverityMedium},
		{Standard: "policy", Metric: "profanity", Severity: types.SeverityMedium},
		{Standard: "engagement", Metric: "low_civility", Severity: types.SeverityMedium},
	}, AggregationPolicy{})
	assert.Equal(t, types.SeverityHigh, severity)
	assert.Contains(t, reason, "3 medium-severity violations")
}

func TestAggregate_TwoMediumsStayMedium(t *testing.T) {
	severity, reason := aggregate([]types.Violation{
		{Standard: "spam", Metric: "promotional", Severity: types.SeverityMedium},
		{Standard: "policy", Metric: "profanity", Severity: types.SeverityMedium},
	}, AggregationPolicy{})
	assert.Equal(t, types.SeverityMedium, severity)
	assert.Empty(t, reason)
}

func TestAggregate_SingleLow(t *testing.T) {
	severity, _ := aggregate([]types.Violation{
		{Standard: "quality", Metric: "engagement_quality", Severity: types.SeverityLow},
	}, AggregationPolicy{})
	assert.Equal(t, types.SeverityLow, severity)
}

func TestAggregate_ConfigurableThresholds(t *testing.T) {
	violations := []types.Violation{
		{Standard: "safety", Metric: "direct_threats", Severity: types.SeverityHigh},
		{Standard: "spam", Metric: "link_density", Severity: types.SeverityHigh},
	}
	severity, _ := aggregate(violations, AggregationPolicy{CompoundHighStandards: 3})
	assert.Equal(t, types.SeverityHigh, severity)

	mediums := []types.Violation{
		{Standard: "spam", Metric: "promotional", Severity: types.SeverityMedium},
		{Standard: "policy", Metric: "profanity", Severity: types.SeverityMedium},
	}
	severity, _ = aggregate(mediums, AggregationPolicy{MediumVolumeThreshold: 2})
	assert.Equal(t, types.SeverityHigh, severity)
}

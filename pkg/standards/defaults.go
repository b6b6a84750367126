package standards

import (
	"fmt"
	"strings"

	"github.com/ModerationAI/modcore/pkg/config"
	"github.com/ModerationAI/modcore/pkg/types"
)

var builtinMetrics = map[string]Metric{
	MetricDirectThreats: {
		ID:           MetricDirectThreats,
		Description:  "Threatening language aimed at an identifiable target",
		BaseSeverity: types.SeverityHigh,
		Predicate:    directThreats,
	},
	MetricHateSpeech: {
		ID:           MetricHateSpeech,
		Description:  "Slur lexicon hits and claims of group inferiority",
		BaseSeverity: types.SeverityCritical,
		Predicate:    hateSpeech,
	},
	MetricSelfHarm: {
		ID:           MetricSelfHarm,
		Description:  "Self-harm and suicide language",
		BaseSeverity: types.SeverityCritical,
		Predicate:    selfHarm,
	},
	MetricEngagementQuality: {
		ID:           MetricEngagementQuality,
		Description:  "Effectively empty comment with no question or reference",
		BaseSeverity: types.SeverityLow,
		Predicate:    engagementQuality,
	},
	MetricIncoherentRepetition: {
		ID:           MetricIncoherentRepetition,
		Description:  "Filler character runs",
		BaseSeverity: types.SeverityLow,
		Predicate:    incoherentRepetition,
	},
	MetricPromotional: {
		ID:           MetricPromotional,
		Description:  "External link plus call-to-action or recruitment language",
		BaseSeverity: types.SeverityMedium,
		Predicate:    promotional,
	},
	MetricLinkDensity: {
		ID:           MetricLinkDensity,
		Description:  "Link stuffing",
		BaseSeverity: types.SeverityHigh,
		Predicate:    linkDensity,
	},
	MetricRepetition: {
		ID:           MetricRepetition,
		Description:  "Near-duplicate of a recent comment by the same author",
		BaseSeverity: types.SeverityHigh,
		Predicate:    repetition,
	},
	MetricExplicitContent: {
		ID:           MetricExplicitContent,
		Description:  "Graphic sexual content",
		BaseSeverity: types.SeverityMedium,
		Predicate:    explicitContent,
	},
	MetricMisinformation: {
		ID:           MetricMisinformation,
		Description:  "Misinformation markers",
		BaseSeverity: types.SeverityHigh,
		Predicate:    misinformation,
	},
	MetricProfanity: {
		ID:           MetricProfanity,
		Description:  "Profane language",
		BaseSeverity: types.SeverityMedium,
		Predicate:    profanityMetric,
	},
	MetricNegativeTone: {
		ID:           MetricNegativeTone,
		Description:  "Strongly negative tone",
		BaseSeverity: types.SeverityLow,
		Predicate:    negativeTone,
	},
	MetricLowCivility: {
		ID:           MetricLowCivility,
		Description:  "Hostile, shouted negativity",
		BaseSeverity: types.SeverityMedium,
		Predicate:    lowCivility,
	},
}

var defaultTable = []struct {
	name    string
	metrics []string
}{
	{Safety, []string{MetricDirectThreats, MetricHateSpeech, MetricSelfHarm}},
	{Quality, []string{MetricEngagementQuality, MetricIncoherentRepetition}},
	{Spam, []string{MetricPromotional, MetricLinkDensity, MetricRepetition}},
	{Policy, []string{MetricExplicitContent, MetricMisinformation, MetricProfanity}},
	{Engagement, []string{MetricNegativeTone, MetricLowCivility}},
}

// DefaultStandards returns the builtin five-standard table in its fixed
// evaluation order.
func DefaultStandards() []Standard {
	out := make([]Standard, 0, len(defaultTable))
	for _, entry := range defaultTable {
		s := Standard{Name: entry.name}
		for _, id := range entry.metrics {
			s.Metrics = append(s.Metrics, builtinMetrics[id])
		}
		out = append(out, s)
	}
	return out
}

var knownStandards = map[string]bool{
	Safety:     true,
	Quality:    true,
	Spam:       true,
	Policy:     true,
	Engagement: true,
}

// FromConfig builds the standard table from configuration. An empty
// configuration yields the defaults. Configured standards may disable
// metrics or override base severities; they cannot invent metrics or
// standards.
func FromConfig(cfgStandards []config.StandardConfig) ([]Standard, error) {
	if len(cfgStandards) == 0 {
		return DefaultStandards(), nil
	}

	var out []Standard
	for _, sc := range cfgStandards {
		name := strings.ToLower(sc.Name)
		if !knownStandards[name] {
			return nil, fmt.Errorf("unknown standard: %s", sc.Name)
		}
		if !sc.Enabled {
			continue
		}
		standard := Standard{Name: name}
		for _, mc := range sc.Metrics {
			if !mc.Enabled {
				continue
			}
			metric, ok := builtinMetrics[mc.ID]
			if !ok {
				return nil, fmt.Errorf("standard %s: unknown metric id %s", name, mc.ID)
			}
			if mc.Severity != "" {
				severity := types.Severity(strings.ToLower(mc.Severity))
				if severity.Rank() < types.SeverityLow.Rank() {
					return nil, fmt.Errorf("standard %s: invalid severity %s for metric %s", name, mc.Severity, mc.ID)
				}
				metric.BaseSeverity = severity
			}
			standard.Metrics = append(standard.Metrics, metric)
		}
		if len(standard.Metrics) > 0 {
			out = append(out, standard)
		}
	}
	return out, nil
}

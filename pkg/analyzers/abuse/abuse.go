package abuse

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "abuse"

type Config struct {
	CustomSlurs []string `mapstructure:"custom_slurs"`
	Timeout     string   `mapstructure:"timeout"`
}

// Analyzer detects hate speech: slur lexicon hits, claims of group
// inferiority, group-directed violence and self-harm language.
type Analyzer struct {
	logger      *logrus.Logger
	slurPattern *regexp.Regexp
	timeout     time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	terms := append([]string{}, slurLexicon...)
	for _, s := range cfg.CustomSlurs {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			terms = append(terms, regexp.QuoteMeta(s))
		}
	}
	slurPattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(terms, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid slur lexicon: %w", err)
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{logger: logger, slurPattern: slurPattern, timeout: timeout}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(_ context.Context, _ types.Comment, text types.NormalizedText) ([]types.Finding, error) {
	var findings []types.Finding

	if m := a.slurPattern.FindString(text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "hate_slur",
			Confidence:   0.95,
			SeverityHint: types.SeverityCritical,
			Evidence:     strings.ToLower(m),
		})
	}

	if m := inferiorityPattern.FindString(text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "inferiority_claim",
			Confidence:   0.85,
			SeverityHint: types.SeverityHigh,
			Evidence:     m,
		})
	}

	if m := groupViolencePattern.FindString(text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "group_violence",
			Confidence:   0.9,
			SeverityHint: types.SeverityCritical,
			Evidence:     m,
		})
	}

	if m := selfHarmPattern.FindString(text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "self_harm",
			Confidence:   0.9,
			SeverityHint: types.SeverityCritical,
			Evidence:     m,
		})
	}

	return findings, nil
}

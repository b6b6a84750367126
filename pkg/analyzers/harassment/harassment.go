package harassment

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "harassment"

type Config struct {
	Timeout string `mapstructure:"timeout"`
}

// Analyzer detects direct personal attacks, harassment patterns and
// threatening language aimed at an identifiable target.
type Analyzer struct {
	logger  *logrus.Logger
	timeout time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{logger: logger, timeout: timeout}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(_ context.Context, _ types.Comment, text types.NormalizedText) ([]types.Finding, error) {
	var findings []types.Finding

	if m := firstMatch(threatPatterns, text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "harassment_threat",
			Confidence:   0.9,
			SeverityHint: types.SeverityHigh,
			Evidence:     m,
		})
	}

	if m := firstMatch(directAttackPatterns, text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "harassment_attack",
			Confidence:   0.85,
			SeverityHint: types.SeverityHigh,
			Evidence:     m,
		})
	}

	if m := firstMatch(harassmentPatterns, text.Plain); m != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "harassment_pattern",
			Confidence:   0.7,
			SeverityHint: types.SeverityMedium,
			Evidence:     m,
		})
	}

	return findings, nil
}

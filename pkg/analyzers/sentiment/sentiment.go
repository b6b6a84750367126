package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "sentiment"

type Config struct {
	NegativeThreshold float64 `mapstructure:"negative_threshold"`
	Timeout           string  `mapstructure:"timeout"`
}

// Analyzer performs rule-based polarity detection from positive and
// negative word lexicons. Strongly negative text yields a negative_tone
// finding; negative text shouted in caps yields hostile_tone.
type Analyzer struct {
	logger            *logrus.Logger
	negativeThreshold float64
	timeout           time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	threshold := cfg.NegativeThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.3
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{logger: logger, negativeThreshold: threshold, timeout: timeout}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(_ context.Context, _ types.Comment, text types.NormalizedText) ([]types.Finding, error) {
	if text.WordCount == 0 {
		return nil, nil
	}

	var positive, negative int
	for _, raw := range strings.Fields(strings.ToLower(text.Plain)) {
		word := strings.Trim(raw, ".,!?;:'\"()")
		if positiveWords[word] {
			positive++
		}
		if negativeWords[word] {
			negative++
		}
	}

	// Polarity in [-1,1]: share of sentiment-bearing words, signed.
	score := float64(positive-negative) / float64(text.WordCount)
	if score >= -a.negativeThreshold {
		return nil, nil
	}

	confidence := -score
	if confidence > 1 {
		confidence = 1
	}

	findings := []types.Finding{{
		Analyzer:     AnalyzerName,
		Kind:         "negative_tone",
		Confidence:   confidence,
		SeverityHint: types.SeverityLow,
		Evidence:     fmt.Sprintf("polarity=%.2f", score),
	}}

	if text.CapsRatio >= 0.7 && text.CharCount >= 15 {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "hostile_tone",
			Confidence:   confidence,
			SeverityHint: types.SeverityMedium,
			Evidence:     fmt.Sprintf("caps_ratio=%.2f", text.CapsRatio),
		})
	}

	return findings, nil
}

package faq

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

const AnalyzerName = "faq"

type Config struct {
	Timeout string `mapstructure:"timeout"`
}

// Analyzer surfaces question and content-ideation signal: comments that
// ask a question (FAQ candidates) or suggest follow-up content. The
// findings feed the engagement audit trail, not the violation path.
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
	if text.WordCount == 0 {
		return nil, nil
	}
	lower := strings.ToLower(text.Plain)

	var findings []types.Finding

	if isQuestion(lower) {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "question",
			Confidence:   questionConfidence(lower),
			SeverityHint: types.SeverityNone,
			Evidence:     firstSentence(text.Plain),
		})
	}

	for _, p := range ideationPatterns {
		if m := p.FindString(lower); m != "" {
			findings = append(findings, types.Finding{
				Analyzer:     AnalyzerName,
				Kind:         "content_idea",
				Confidence:   0.6,
				SeverityHint: types.SeverityNone,
				Evidence:     m,
			})
			break
		}
	}

	return findings, nil
}

func isQuestion(lower string) bool {
	if strings.Contains(lower, "?") {
		return true
	}
	for _, starter := range questionStarters {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

func questionConfidence(lower string) float64 {
	if strings.Contains(lower, "?") {
		return 0.9
	}
	return 0.6
}

func firstSentence(text string) string {
	for i, r := range text {
		if r == '.' || r == '?' || r == '!' {
			return text[:i+1]
		}
	}
	if len(text) > 120 {
		return text[:117] + "..."
	}
	return text
}

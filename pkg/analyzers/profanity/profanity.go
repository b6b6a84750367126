package profanity

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

const AnalyzerName = "profanity"

type Config struct {
	CustomWords []string `mapstructure:"custom_words"`
	Timeout     string   `mapstructure:"timeout"`
}

// Analyzer detects profane language with a word-boundary lexicon match.
type Analyzer struct {
	logger  *logrus.Logger
	pattern *regexp.Regexp
	timeout time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	words := append([]string{}, defaultLexicon...)
	for _, w := range cfg.CustomWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			words = append(words, regexp.QuoteMeta(w))
		}
	}

	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid profanity lexicon: %w", err)
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{logger: logger, pattern: pattern, timeout: timeout}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(_ context.Context, _ types.Comment, text types.NormalizedText) ([]types.Finding, error) {
	matches := a.pattern.FindAllString(text.Plain, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(matches))
	var findings []types.Finding
	for _, m := range matches {
		word := strings.ToLower(m)
		if seen[word] {
			continue
		}
		seen[word] = true
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "profanity",
			Confidence:   0.9,
			SeverityHint: types.SeverityMedium,
			Evidence:     word,
		})
	}
	return findings, nil
}

package spam

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/normalizer"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "spam"

type Config struct {
	SimilarityThreshold float64  `mapstructure:"similarity_threshold"`
	ExtraCTAKeywords    []string `mapstructure:"extra_cta_keywords"`
	Timeout             string   `mapstructure:"timeout"`
}

// Analyzer detects promotional content, link stuffing, filler character
// runs and near-duplicate reposts from the same author.
type Analyzer struct {
	logger              *logrus.Logger
	ctaKeywords         []string
	similarityThreshold float64
	timeout             time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	threshold := cfg.SimilarityThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}

	keywords := append([]string{}, ctaKeywords...)
	for _, k := range cfg.ExtraCTAKeywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{
		logger:              logger,
		ctaKeywords:         keywords,
		similarityThreshold: threshold,
		timeout:             timeout,
	}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(_ context.Context, comment types.Comment, text types.NormalizedText) ([]types.Finding, error) {
	var findings []types.Finding
	lower := strings.ToLower(text.Plain)

	for _, link := range text.Links {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "spam_link",
			Confidence:   0.7,
			SeverityHint: types.SeverityMedium,
			Evidence:     link,
		})
	}

	if kw := firstKeyword(lower, a.ctaKeywords); kw != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "spam_cta",
			Confidence:   0.8,
			SeverityHint: types.SeverityMedium,
			Evidence:     kw,
		})
	}

	if kw := firstKeyword(lower, recruitmentKeywords); kw != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "spam_recruitment",
			Confidence:   0.8,
			SeverityHint: types.SeverityMedium,
			Evidence:     kw,
		})
	}

	if run := charRunPattern.FindString(text.Plain); run != "" {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "char_repetition",
			Confidence:   0.6,
			SeverityHint: types.SeverityLow,
			Evidence:     run,
		})
	}

	// Near-duplicate detection requires the caller-supplied recent
	// window; without it the check does not fire.
	if comment.Context != nil {
		for _, recent := range comment.Context.RecentComments {
			sim := normalizer.Similarity(text.Plain, recent)
			if sim >= a.similarityThreshold {
				findings = append(findings, types.Finding{
					Analyzer:     AnalyzerName,
					Kind:         "repetition",
					Confidence:   sim,
					SeverityHint: types.SeverityHigh,
					Evidence:     fmt.Sprintf("similarity=%.2f", sim),
				})
				break
			}
		}
	}

	return findings, nil
}

func firstKeyword(lower string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

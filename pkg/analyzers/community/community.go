package community

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "community"

type Config struct {
	HighEngagementLikes int    `mapstructure:"high_engagement_likes"`
	Timeout             string `mapstructure:"timeout"`
}

// Analyzer derives community-engagement signal from the comment
// metadata the platform adapter supplies: likes, replies and author
// reach. Without context it contributes nothing.
type Analyzer struct {
	logger              *logrus.Logger
	highEngagementLikes int
	timeout             time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	likes := cfg.HighEngagementLikes
	if likes <= 0 {
		likes = 25
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{logger: logger, highEngagementLikes: likes, timeout: timeout}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(_ context.Context, comment types.Comment, _ types.NormalizedText) ([]types.Finding, error) {
	ctx := comment.Context
	if ctx == nil {
		return nil, nil
	}

	var findings []types.Finding

	if ctx.Likes >= a.highEngagementLikes || ctx.RepliesCount >= a.highEngagementLikes/5 {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "engagement_signal",
			Confidence:   0.8,
			SeverityHint: types.SeverityNone,
			Evidence:     fmt.Sprintf("high_engagement likes=%d replies=%d", ctx.Likes, ctx.RepliesCount),
		})
	}

	if ctx.AuthorFollowers > 0 && ctx.Likes == 0 && ctx.RepliesCount == 0 {
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "engagement_signal",
			Confidence:   0.5,
			SeverityHint: types.SeverityNone,
			Evidence:     "low_engagement",
		})
	}

	return findings, nil
}

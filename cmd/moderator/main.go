package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/analyzers"
	"github.com/ModerationAI/modcore/pkg/analyzers/abuse"
	"github.com/ModerationAI/modcore/pkg/analyzers/categorizer"
	"github.com/ModerationAI/modcore/pkg/analyzers/community"
	"github.com/ModerationAI/modcore/pkg/analyzers/faq"
	"github.com/ModerationAI/modcore/pkg/analyzers/harassment"
	"github.com/ModerationAI/modcore/pkg/analyzers/profanity"
	"github.com/ModerationAI/modcore/pkg/analyzers/sentiment"
	"github.com/ModerationAI/modcore/pkg/analyzers/spam"
	"github.com/ModerationAI/modcore/pkg/analyzers/toxicity_remote"
	"github.com/ModerationAI/modcore/pkg/config"
	"github.com/ModerationAI/modcore/pkg/infra/logger"
	"github.com/ModerationAI/modcore/pkg/infra/provider"
	"github.com/ModerationAI/modcore/pkg/infra/ratelimit"
	"github.com/ModerationAI/modcore/pkg/moderation"
	"github.com/ModerationAI/modcore/pkg/platform"
	"github.com/ModerationAI/modcore/pkg/standards"
	"github.com/ModerationAI/modcore/pkg/types"
)

type analyzerFactory func(log *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error)

var localAnalyzers = []struct {
	name    string
	factory analyzerFactory
}{
	{harassment.AnalyzerName, harassment.NewAnalyzer},
	{abuse.AnalyzerName, abuse.NewAnalyzer},
	{profanity.AnalyzerName, profanity.NewAnalyzer},
	{spam.AnalyzerName, spam.NewAnalyzer},
	{sentiment.AnalyzerName, sentiment.NewAnalyzer},
	{categorizer.AnalyzerName, categorizer.NewAnalyzer},
	{faq.AnalyzerName, faq.NewAnalyzer},
	{community.AnalyzerName, community.NewAnalyzer},
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "directory containing config.yaml")
	flag.Parse()

	log := logger.NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	store := config.NewStore(cfg)

	engine, err := buildEngine(log, store.Current())
	if err != nil {
		log.WithError(err).Fatal("failed to build moderation engine")
	}

	if err := run(context.Background(), log, engine, os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Fatal("moderation run failed")
	}
}

func buildEngine(log *logrus.Logger, cfg *config.Config) (*moderation.Engine, error) {
	table, err := standards.FromConfig(cfg.Standards)
	if err != nil {
		return nil, fmt.Errorf("building standards table: %w", err)
	}
	standardsEngine, err := standards.NewEngine(log, table)
	if err != nil {
		return nil, fmt.Errorf("building standards engine: %w", err)
	}

	registry := analyzers.NewRegistry(log)
	for _, entry := range localAnalyzers {
		ac, configured := cfg.Analyzers[entry.name]
		if configured && !ac.Enabled {
			continue
		}
		a, err := entry.factory(log, ac.Settings)
		if err != nil {
			return nil, fmt.Errorf("building analyzer %s: %w", entry.name, err)
		}
		if err := registry.Register(a); err != nil {
			return nil, err
		}
	}

	if cfg.Provider.Enabled {
		admission, err := buildAdmission(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		classifier := provider.NewHTTPClassifier(log, nil, provider.HTTPClassifierConfig{
			ProviderID: cfg.Provider.ProviderID,
			URL:        cfg.Provider.URL,
			APIKey:     cfg.Provider.APIKey,
		})
		settings := cfg.Analyzers[toxicity_remote.AnalyzerName].Settings
		remote, err := toxicity_remote.NewAnalyzer(log, classifier, admission, settings)
		if err != nil {
			return nil, fmt.Errorf("building analyzer %s: %w", toxicity_remote.AnalyzerName, err)
		}
		if err := registry.Register(remote); err != nil {
			return nil, err
		}
	}

	overallBudget, err := time.ParseDuration(cfg.Engine.OverallTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid engine.overall_timeout: %w", err)
	}

	return moderation.NewEngine(log, registry, standardsEngine, moderation.Options{
		Policy: moderation.AggregationPolicy{
			CompoundHighStandards: cfg.Policy.CompoundHighStandards,
			MediumVolumeThreshold: cfg.Policy.MediumVolumeThreshold,
		},
		MediumHideStandards: cfg.Policy.MediumHideStandards,
		MaxConcurrent:       int64(cfg.Engine.MaxConcurrentEvaluations),
		OverallBudget:       overallBudget,
	}), nil
}

func buildAdmission(cfg config.RateLimitConfig) (ratelimit.AdmissionController, error) {
	if cfg.Mode == "redis" {
		window, err := time.ParseDuration(cfg.Window)
		if err != nil {
			return nil, fmt.Errorf("invalid rate_limit.window: %w", err)
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return ratelimit.NewSlidingWindow(client, cfg.Limit, window, nil), nil
	}
	return ratelimit.NewTokenBucket(cfg.RequestsPerMinute, cfg.RequestsPerHour, cfg.BurstSize, nil), nil
}

// run reads a comment (or an array of comments) as JSON from in, and
// writes one decision per line to out.
func run(ctx context.Context, log *logrus.Logger, engine *moderation.Engine, in io.Reader, out io.Writer) error {
	payload, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var comments []types.Comment
	if err := json.Unmarshal(payload, &comments); err != nil {
		var single types.Comment
		if err := json.Unmarshal(payload, &single); err != nil {
			return fmt.Errorf("input is neither a comment nor a comment array: %w", err)
		}
		comments = []types.Comment{single}
	}

	results, err := engine.ModerateBatch(ctx, comments)
	if err != nil {
		return err
	}

	executor := &platform.LogExecutor{Logger: log}
	enc := json.NewEncoder(out)
	for _, result := range results {
		if err := executor.Execute(ctx, result); err != nil {
			return err
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	}
	return nil
}

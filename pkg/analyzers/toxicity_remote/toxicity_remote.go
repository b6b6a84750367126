package toxicity_remote

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/infra/provider"
	"github.com/ModerationAI/modcore/pkg/infra/ratelimit"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "toxicity_remote"

type Config struct {
	Thresholds       map[string]float64 `mapstructure:"thresholds"`
	DefaultThreshold float64            `mapstructure:"default_threshold"`
	AdmissionWait    string             `mapstructure:"admission_wait"`
	Timeout          string             `mapstructure:"timeout"`
}

// Analyzer delegates classification to a remote moderation provider.
// Every call goes through the shared admission controller; denial or
// provider failure means zero findings and a degraded record, never a
// stalled pipeline.
type Analyzer struct {
	logger           *logrus.Logger
	classifier       provider.Classifier
	admission        ratelimit.AdmissionController
	thresholds       map[string]float64
	defaultThreshold float64
	admissionWait    time.Duration
	timeout          time.Duration
}

func NewAnalyzer(
	logger *logrus.Logger,
	classifier provider.Classifier,
	admission ratelimit.AdmissionController,
	settings map[string]interface{},
) (analyzeriface.Analyzer, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if admission == nil {
		return nil, fmt.Errorf("admission controller is required")
	}

	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	defaultThreshold := cfg.DefaultThreshold
	if defaultThreshold <= 0 || defaultThreshold > 1 {
		defaultThreshold = 0.7
	}

	admissionWait := 500 * time.Millisecond
	if cfg.AdmissionWait != "" {
		var err error
		admissionWait, err = time.ParseDuration(cfg.AdmissionWait)
		if err != nil {
			return nil, fmt.Errorf("invalid admission_wait: %w", err)
		}
	}

	timeout := 5 * time.Second
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{
		logger:           logger,
		classifier:       classifier,
		admission:        admission,
		thresholds:       cfg.Thresholds,
		defaultThreshold: defaultThreshold,
		admissionWait:    admissionWait,
		timeout:          timeout,
	}, nil
}

func (a *Analyzer) Name() string {
	return AnalyzerName
}

func (a *Analyzer) TimeoutBudget() time.Duration {
	return a.timeout
}

func (a *Analyzer) Analyze(ctx context.Context, _ types.Comment, text types.NormalizedText) ([]types.Finding, error) {
	if text.Plain == "" {
		return nil, nil
	}

	admitted, err := a.admission.AcquireOrTimeout(ctx, a.classifier.ProviderID(), a.admissionWait)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAnalyzerFailure, err)
	}
	if !admitted {
		return nil, types.ErrAdmissionDenied
	}

	classification, err := a.classifier.Classify(ctx, text.Plain)
	if err != nil {
		return nil, err
	}

	var findings []types.Finding
	for category, score := range classification.Scores {
		threshold := a.defaultThreshold
		if t, ok := a.thresholds[category]; ok {
			threshold = t
		}
		if score < threshold {
			continue
		}
		findings = append(findings, types.Finding{
			Analyzer:     AnalyzerName,
			Kind:         "toxicity_" + category,
			Confidence:   score,
			SeverityHint: severityForScore(score),
			Evidence:     fmt.Sprintf("%s=%.2f", category, score),
		})
	}
	return findings, nil
}

func severityForScore(score float64) types.Severity {
	switch {
	case score >= 0.95:
		return types.SeverityCritical
	case score >= 0.8:
		return types.SeverityHigh
	case score >= 0.5:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}

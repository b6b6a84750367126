package categorizer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/types"
)

const AnalyzerName = "categorizer"

type Config struct {
	ExtraTopics map[string][]string `mapstructure:"extra_topics"`
	Timeout     string              `mapstructure:"timeout"`
}

// Analyzer buckets a comment into topic categories by keyword overlap.
// Category findings carry no moderation weight of their own; they enrich
// the audit trail and engagement metrics.
type Analyzer struct {
	logger  *logrus.Logger
	topics  map[string][]string
	timeout time.Duration
}

func NewAnalyzer(logger *logrus.Logger, settings map[string]interface{}) (analyzeriface.Analyzer, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	topics := make(map[string][]string, len(topicCategories)+len(cfg.ExtraTopics))
	for name, words := range topicCategories {
		topics[name] = words
	}
	for name, words := range cfg.ExtraTopics {
		topics[strings.ToLower(name)] = words
	}

	timeout := 2 * time.Second
	if cfg.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return &Analyzer{logger: logger, topics: topics, timeout: timeout}, nil
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

	words := make(map[string]bool, text.WordCount)
	for _, w := range strings.Fields(strings.ToLower(text.Plain)) {
		words[strings.Trim(w, ".,!?;:'\"()")] = true
	}

	type topicHit struct {
		name string
		hits int
	}
	var hits []topicHit
	for name, keywords := range a.topics {
		n := 0
		for _, kw := range keywords {
			if words[kw] {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, topicHit{name: name, hits: n})
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].hits != hits[j].hits {
			return hits[i].hits > hits[j].hits
		}
		return hits[i].name < hits[j].name
	})

	best := hits[0]
	confidence := float64(best.hits) / float64(text.WordCount)
	if confidence > 1 {
		confidence = 1
	}

	return []types.Finding{{
		Analyzer:     AnalyzerName,
		Kind:         "category",
		Confidence:   confidence,
		SeverityHint: types.SeverityNone,
		Evidence:     best.name,
	}}, nil
}

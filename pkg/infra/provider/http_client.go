package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/valyala/fastjson"

	"github.com/ModerationAI/modcore/pkg/types"
)

// Doer is the minimal HTTP client surface, extracted for test fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClassifier calls a moderation endpoint shaped like the common
// /moderations APIs: {"input": "..."} in, per-category booleans and
// scores out. A circuit breaker sheds load when the provider is
// unhealthy so analyzer goroutines fail fast instead of piling up.
type HTTPClassifier struct {
	providerID string
	url        string
	apiKey     string
	client     Doer
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
	parserPool fastjson.ParserPool
}

type HTTPClassifierConfig struct {
	ProviderID string
	URL        string
	APIKey     string
}

func NewHTTPClassifier(logger *logrus.Logger, client Doer, cfg HTTPClassifierConfig) *HTTPClassifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.ProviderID,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &HTTPClassifier{
		providerID: cfg.ProviderID,
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		client:     client,
		breaker:    breaker,
		logger:     logger,
	}
}

func (c *HTTPClassifier) ProviderID() string {
	return c.providerID
}

func (c *HTTPClassifier) Classify(ctx context.Context, input string) (*Classification, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doClassify(ctx, input)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrAnalyzerFailure, err)
	}
	classification, ok := result.(*Classification)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected breaker result", types.ErrAnalyzerFailure)
	}
	return classification, nil
}

func (c *HTTPClassifier) doClassify(ctx context.Context, input string) (*Classification, error) {
	body, err := json.Marshal(map[string]string{"input": input})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"provider": c.providerID,
			"status":   resp.StatusCode,
		}).Warn("provider returned non-200")
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return c.parseClassification(payload)
}

func (c *HTTPClassifier) parseClassification(payload []byte) (*Classification, error) {
	parser := c.parserPool.Get()
	defer c.parserPool.Put(parser)

	v, err := parser.ParseBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	result := v.Get("results", "0")
	if result == nil {
		result = v
	}

	classification := &Classification{
		Flagged:    result.GetBool("flagged"),
		Categories: make(map[string]bool),
		Scores:     make(map[string]float64),
	}

	if categories := result.GetObject("categories"); categories != nil {
		categories.Visit(func(key []byte, val *fastjson.Value) {
			classification.Categories[string(key)] = val.GetBool()
		})
	}
	if scores := result.GetObject("category_scores"); scores != nil {
		scores.Visit(func(key []byte, val *fastjson.Value) {
			classification.Scores[string(key)] = val.GetFloat64()
		})
	}

	return classification, nil
}

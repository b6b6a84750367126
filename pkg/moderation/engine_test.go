package moderation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/analyzers"
	"github.com/ModerationAI/modcore/pkg/analyzers/abuse"
	"github.com/ModerationAI/modcore/pkg/analyzers/harassment"
	"github.com/ModerationAI/modcore/pkg/analyzers/profanity"
	"github.com/ModerationAI/modcore/pkg/analyzers/sentiment"
	"github.com/ModerationAI/modcore/pkg/analyzers/spam"
	"github.com/ModerationAI/modcore/pkg/moderation"
	"github.com/ModerationAI/modcore/pkg/standards"
	"github.com/ModerationAI/modcore/pkg/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

type localFactory func(*logrus.Logger, map[string]interface{}) (analyzeriface.Analyzer, error)

func createEngine(t *testing.T, extra ...analyzeriface.Analyzer) *moderation.Engine {
	logger := testLogger()

	registry := analyzers.NewRegistry(logger)
	for _, factory := range []localFactory{
		harassment.NewAnalyzer,
		abuse.NewAnalyzer,
		profanity.NewAnalyzer,
		spam.NewAnalyzer,
		sentiment.NewAnalyzer,
	} {
		a, err := factory(logger, nil)
		require.NoError(t, err)
		require.NoError(t, registry.Register(a))
	}
	for _, a := range extra {
		require.NoError(t, registry.Register(a))
	}

	standardsEngine, err := standards.NewEngine(logger, standards.DefaultStandards())
	require.NoError(t, err)

	return moderation.NewEngine(logger, registry, standardsEngine, moderation.Options{})
}

func moderate(t *testing.T, engine *moderation.Engine, text string) *types.ModerationResult {
	result, err := engine.Moderate(context.Background(), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: text, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return result
}

func TestModerate_CleanCommentApproves(t *testing.T) {
	result := moderate(t, createEngine(t), "This tutorial finally made pointers click for me, thank you!")

	assert.Equal(t, types.ActionApprove, result.Action)
	assert.Equal(t, types.SeverityNone, result.OverallSeverity)
	assert.Empty(t, result.Violations)
	assert.InDelta(t, 1.0, result.Confidence, 0.001)
	assert.False(t, result.Degraded)
	assert.NotEmpty(t, result.EvaluationID)
}

func TestModerate_DirectThreatHides(t *testing.T) {
	result := moderate(t, createEngine(t), "I'm going to get you for this")

	assert.Equal(t, types.ActionHide, result.Action)
	assert.Equal(t, types.SeverityHigh, result.OverallSeverity)
	require.NotEmpty(t, result.Violations)
	assert.Equal(t, "direct_threats", result.Violations[0].Metric)
	assert.Equal(t, "safety", result.Violations[0].Standard)
	assert.InDelta(t, 0.9, result.Confidence, 0.001)
}

func TestModerate_LinkStuffedPromoHides(t *testing.T) {
	result := moderate(t, createEngine(t),
		"Buy now https://a.example.com https://b.example.com https://c.example.com")

	assert.Equal(t, types.ActionHide, result.Action)
	assert.Equal(t, types.SeverityHigh, result.OverallSeverity)

	metrics := make(map[string]types.Severity)
	for _, v := range result.Violations {
		metrics[v.Metric] = v.Severity
	}
	assert.Equal(t, types.SeverityHigh, metrics["link_density"])
	assert.Equal(t, types.SeverityMedium, metrics["promotional"])
}

func TestModerate_CrossStandardHighsRemove(t *testing.T) {
	result := moderate(t, createEngine(t),
		"all outsiders are worthless https://a.example.com https://b.example.com https://c.example.com")

	assert.Equal(t, types.ActionRemove, result.Action)
	assert.Equal(t, types.SeverityCritical, result.OverallSeverity)
	assert.Contains(t, result.EscalationReason, "across 2 standards")

	// Severity escalated past every individual violation; confidence
	// still comes from the high-severity findings, not the 1.0
	// deterministic fallback.
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
}

func TestModerate_LowEffortCommentFlags(t *testing.T) {
	result := moderate(t, createEngine(t), "ok")

	assert.Equal(t, types.ActionFlag, result.Action)
	assert.Equal(t, types.SeverityLow, result.OverallSeverity)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "engagement_quality", result.Violations[0].Metric)
	assert.InDelta(t, 1.0, result.Confidence, 0.001)
}

func TestModerate_MediumSpamHidesInsteadOfFlagging(t *testing.T) {
	result := moderate(t, createEngine(t), "Buy now at https://shop.example.com today folks")

	assert.Equal(t, types.SeverityMedium, result.OverallSeverity)
	assert.Equal(t, types.ActionHide, result.Action)
}

func TestModerate_IsDeterministic(t *testing.T) {
	engine := createEngine(t)
	text := "Buy now https://a.example.com https://b.example.com https://c.example.com"

	first := moderate(t, engine, text)
	for i := 0; i < 5; i++ {
		next := moderate(t, engine, text)
		assert.Equal(t, first.Action, next.Action)
		assert.Equal(t, first.OverallSeverity, next.OverallSeverity)
		assert.Equal(t, first.Violations, next.Violations)
	}
}

func TestModerate_RejectsInvalidComment(t *testing.T) {
	engine := createEngine(t)

	_, err := engine.Moderate(context.Background(), types.Comment{AuthorID: "a-1", Text: "hi"})
	assert.ErrorIs(t, err, types.ErrInvalidComment)

	_, err = engine.Moderate(context.Background(), types.Comment{ID: "c-1", Text: "hi"})
	assert.ErrorIs(t, err, types.ErrInvalidComment)
}

type failingAnalyzer struct{ name string }

func (f *failingAnalyzer) Name() string                 { return f.name }
func (f *failingAnalyzer) TimeoutBudget() time.Duration { return time.Second }

func (f *failingAnalyzer) Analyze(context.Context, types.Comment, types.NormalizedText) ([]types.Finding, error) {
	return nil, errors.New("connection refused")
}

func TestModerate_DegradedAnalyzerScalesConfidence(t *testing.T) {
	engine := createEngine(t, &failingAnalyzer{name: "remote"})
	result := moderate(t, engine, "I'm going to get you for this")

	assert.Equal(t, types.ActionHide, result.Action)
	assert.True(t, result.Degraded)
	require.Len(t, result.DegradedAnalyzers, 1)
	assert.Equal(t, "remote", result.DegradedAnalyzers[0].Name)
	// 5 of 6 analyzers completed.
	assert.InDelta(t, 0.9*5.0/6.0, result.Confidence, 0.001)
}

func TestModerate_AllAnalyzersDegradedStillDecides(t *testing.T) {
	logger := testLogger()
	registry := analyzers.NewRegistry(logger)
	require.NoError(t, registry.Register(&failingAnalyzer{name: "only"}))

	standardsEngine, err := standards.NewEngine(logger, standards.DefaultStandards())
	require.NoError(t, err)
	engine := moderation.NewEngine(logger, registry, standardsEngine, moderation.Options{})

	result, err := engine.Moderate(context.Background(), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "perfectly ordinary comment text",
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionApprove, result.Action)
	assert.True(t, result.Degraded)
	assert.InDelta(t, 0.1, result.Confidence, 0.001)
}

func TestModerateBatch_PreservesOrder(t *testing.T) {
	engine := createEngine(t)
	comments := []types.Comment{
		{ID: "c-1", AuthorID: "a-1", Text: "This tutorial finally made pointers click for me, thank you!"},
		{ID: "c-2", AuthorID: "a-2", Text: "I'm going to get you for this"},
		{ID: "c-3", AuthorID: "a-3", Text: "ok"},
	}

	results, err := engine.ModerateBatch(context.Background(), comments)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "c-1", results[0].CommentID)
	assert.Equal(t, types.ActionApprove, results[0].Action)
	assert.Equal(t, types.ActionHide, results[1].Action)
	assert.Equal(t, types.ActionFlag, results[2].Action)
}

func TestModerateBatch_FailsFastOnInvalidComment(t *testing.T) {
	engine := createEngine(t)
	_, err := engine.ModerateBatch(context.Background(), []types.Comment{
		{ID: "c-1", AuthorID: "a-1", Text: "fine"},
		{ID: "", AuthorID: "a-2", Text: "missing id"},
	})
	assert.ErrorIs(t, err, types.ErrInvalidComment)
}

package faq_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/analyzers/faq"
	"github.com/ModerationAI/modcore/pkg/normalizer"
	"github.com/ModerationAI/modcore/pkg/types"
)

func createAnalyzer(t *testing.T) analyzeriface.Analyzer {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	a, err := faq.NewAnalyzer(logger, nil)
	require.NoError(t, err)
	return a
}

func analyze(t *testing.T, text string) []types.Finding {
	a := createAnalyzer(t)
	findings, err := a.Analyze(context.Background(), types.Comment{ID: "c-1", AuthorID: "a-1", Text: text}, normalizer.Normalize(text))
	require.NoError(t, err)
	return findings
}

func TestAnalyzer_DetectsQuestionMark(t *testing.T) {
	findings := analyze(t, "Does this work on older hardware?")
	require.Len(t, findings, 1)
	assert.Equal(t, "question", findings[0].Kind)
	assert.InDelta(t, 0.9, findings[0].Confidence, 0.001)
}

func TestAnalyzer_DetectsQuestionStarterWithoutMark(t *testing.T) {
	findings := analyze(t, "how do i enable dark mode")
	require.Len(t, findings, 1)
	assert.Equal(t, "question", findings[0].Kind)
	assert.InDelta(t, 0.6, findings[0].Confidence, 0.001)
}

func TestAnalyzer_DetectsContentIdea(t *testing.T) {
	findings := analyze(t, "you should make a follow-up about deployment")
	require.Len(t, findings, 1)
	assert.Equal(t, "content_idea", findings[0].Kind)
}

func TestAnalyzer_PlainStatementYieldsNothing(t *testing.T) {
	findings := analyze(t, "this was well produced")
	assert.Empty(t, findings)
}

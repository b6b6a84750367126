package spam_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/analyzers/spam"
	"github.com/ModerationAI/modcore/pkg/normalizer"
	"github.com/ModerationAI/modcore/pkg/types"
)

func createAnalyzer(t *testing.T, settings map[string]interface{}) analyzeriface.Analyzer {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	a, err := spam.NewAnalyzer(logger, settings)
	require.NoError(t, err)
	return a
}

func analyze(t *testing.T, a analyzeriface.Analyzer, comment types.Comment) []types.Finding {
	findings, err := a.Analyze(context.Background(), comment, normalizer.Normalize(comment.Text))
	require.NoError(t, err)
	return findings
}

func kinds(findings []types.Finding) map[string]int {
	out := make(map[string]int)
	for _, f := range findings {
		out[f.Kind]++
	}
	return out
}

func TestAnalyzer_EmitsOneFindingPerLink(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1",
		Text: "see https://a.example.com and https://b.example.com",
	})
	assert.Equal(t, 2, kinds(found)["spam_link"])
}

func TestAnalyzer_DetectsCallToAction(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "Buy now before it's gone!",
	})
	assert.Equal(t, 1, kinds(found)["spam_cta"])
}

func TestAnalyzer_DetectsRecruitment(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "earn passive income while you sleep",
	})
	assert.Equal(t, 1, kinds(found)["spam_recruitment"])
}

func TestAnalyzer_DetectsCharacterRuns(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "woooooow",
	})
	assert.Equal(t, 1, kinds(found)["char_repetition"])
}

func TestAnalyzer_DetectsNearDuplicateRepost(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1",
		Text: "check the description for details",
		Context: &types.CommentContext{
			RecentComments: []string{"check the description for details!"},
		},
	})
	require.Equal(t, 1, kinds(found)["repetition"])
	for _, f := range found {
		if f.Kind == "repetition" {
			assert.Equal(t, types.SeverityHigh, f.SeverityHint)
			assert.GreaterOrEqual(t, f.Confidence, 0.8)
		}
	}
}

func TestAnalyzer_NoContextSkipsRepetition(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "check the description for details",
	})
	assert.Zero(t, kinds(found)["repetition"])
}

func TestAnalyzer_DissimilarRecentCommentsDoNotFire(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1",
		Text: "totally original thought here",
		Context: &types.CommentContext{
			RecentComments: []string{"unrelated earlier comment about the weather"},
		},
	})
	assert.Zero(t, kinds(found)["repetition"])
}

func TestAnalyzer_ExtraCTAKeywords(t *testing.T) {
	a := createAnalyzer(t, map[string]interface{}{
		"extra_cta_keywords": []string{"smash that bell"},
	})
	found := analyze(t, a, types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "don't forget to smash that bell",
	})
	assert.Equal(t, 1, kinds(found)["spam_cta"])
}

func TestAnalyzer_CleanTextYieldsNothing(t *testing.T) {
	found := analyze(t, createAnalyzer(t, nil), types.Comment{
		ID: "c-1", AuthorID: "a-1", Text: "Interesting take, I had not considered that angle.",
	})
	assert.Empty(t, found)
}

package toxicity_remote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModerationAI/modcore/pkg/analyzeriface"
	"github.com/ModerationAI/modcore/pkg/analyzers/toxicity_remote"
	"github.com/ModerationAI/modcore/pkg/infra/provider"
	"github.com/ModerationAI/modcore/pkg/normalizer"
	"github.com/ModerationAI/modcore/pkg/types"
)

type fakeClassifier struct {
	classification *provider.Classification
	err            error
}

func (f *fakeClassifier) ProviderID() string { return "fake" }

func (f *fakeClassifier) Classify(_ context.Context, _ string) (*provider.Classification, error) {
	return f.classification, f.err
}

type fakeAdmission struct {
	admit bool
	err   error
}

func (f *fakeAdmission) TryAcquire(context.Context, string) (bool, error) {
	return f.admit, f.err
}

func (f *fakeAdmission) AcquireOrTimeout(context.Context, string, time.Duration) (bool, error) {
	return f.admit, f.err
}

func createAnalyzer(t *testing.T, classifier provider.Classifier, settings map[string]interface{}) analyzeriface.Analyzer {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	a, err := toxicity_remote.NewAnalyzer(logger, classifier, &fakeAdmission{admit: true}, settings)
	require.NoError(t, err)
	return a
}

func TestAnalyzer_EmitsFindingsAboveThreshold(t *testing.T) {
	classifier := &fakeClassifier{classification: &provider.Classification{
		Flagged: true,
		Scores:  map[string]float64{"hate": 0.92, "violence": 0.3},
	}}
	a := createAnalyzer(t, classifier, nil)

	text := normalizer.Normalize("some text")
	findings, err := a.Analyze(context.Background(), types.Comment{ID: "c-1", AuthorID: "a-1"}, text)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "toxicity_hate", findings[0].Kind)
	assert.Equal(t, types.SeverityHigh, findings[0].SeverityHint)
	assert.InDelta(t, 0.92, findings[0].Confidence, 0.001)
}

func TestAnalyzer_PerCategoryThresholds(t *testing.T) {
	classifier := &fakeClassifier{classification: &provider.Classification{
		Scores: map[string]float64{"violence": 0.4},
	}}
	a := createAnalyzer(t, classifier, map[string]interface{}{
		"thresholds": map[string]float64{"violence": 0.3},
	})

	findings, err := a.Analyze(context.Background(), types.Comment{ID: "c-1", AuthorID: "a-1"}, normalizer.Normalize("x"))
	require.NoError(t, err)
	assert.Len(t, findings, 1)
}

func TestAnalyzer_AdmissionDenied(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	a, err := toxicity_remote.NewAnalyzer(logger, &fakeClassifier{}, &fakeAdmission{admit: false}, nil)
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), types.Comment{ID: "c-1", AuthorID: "a-1"}, normalizer.Normalize("x"))
	assert.ErrorIs(t, err, types.ErrAdmissionDenied)
}

func TestAnalyzer_ClassifierFailurePropagates(t *testing.T) {
	classifier := &fakeClassifier{err: types.ErrAnalyzerFailure}
	a := createAnalyzer(t, classifier, nil)

	_, err := a.Analyze(context.Background(), types.Comment{ID: "c-1", AuthorID: "a-1"}, normalizer.Normalize("x"))
	assert.ErrorIs(t, err, types.ErrAnalyzerFailure)
}

func TestAnalyzer_EmptyTextSkipsProvider(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("should not be called")}
	a := createAnalyzer(t, classifier, nil)

	findings, err := a.Analyze(context.Background(), types.Comment{ID: "c-1", AuthorID: "a-1"}, types.NormalizedText{})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestNewAnalyzer_RequiresCollaborators(t *testing.T) {
	logger := logrus.New()
	_, err := toxicity_remote.NewAnalyzer(logger, nil, &fakeAdmission{}, nil)
	assert.Error(t, err)

	_, err = toxicity_remote.NewAnalyzer(logger, &fakeClassifier{}, nil, nil)
	assert.Error(t, err)
}

package model

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() Artifact {
	return Artifact{
		ModelType:    "logistic_regression",
		FeatureNames: []string{"a", "b"},
		Coefficients: []float64{2, -1},
		Intercept:    0,
	}
}

func TestArtifact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Artifact)
		wantErr error
	}{
		{name: "valid", mutate: func(a *Artifact) {}},
		{name: "unknown model type", mutate: func(a *Artifact) { a.ModelType = "random_forest" }, wantErr: ErrUnsupportedModel},
		{name: "no features", mutate: func(a *Artifact) { a.FeatureNames = nil; a.Coefficients = nil }, wantErr: ErrInvalidArtifact},
		{name: "coefficient count mismatch", mutate: func(a *Artifact) { a.Coefficients = []float64{1} }, wantErr: ErrInvalidArtifact},
		{name: "duplicate feature", mutate: func(a *Artifact) { a.FeatureNames = []string{"a", "a"} }, wantErr: ErrInvalidArtifact},
		{name: "nan coefficient", mutate: func(a *Artifact) { a.Coefficients[0] = math.NaN() }, wantErr: ErrInvalidArtifact},
		{name: "infinite intercept", mutate: func(a *Artifact) { a.Intercept = math.Inf(1) }, wantErr: ErrInvalidArtifact},
		{name: "threshold too high", mutate: func(a *Artifact) { a.Threshold = 1 }, wantErr: ErrInvalidArtifact},
		{name: "zero scale", mutate: func(a *Artifact) { a.Scaler = &Scaler{Mean: []float64{0, 0}, Scale: []float64{1, 0}} }, wantErr: ErrInvalidArtifact},
		{name: "scaler wrong size", mutate: func(a *Artifact) { a.Scaler = &Scaler{Mean: []float64{0}, Scale: []float64{1}} }, wantErr: ErrInvalidArtifact},
		{name: "categories for unknown feature", mutate: func(a *Artifact) { a.Categories = map[string]map[string]int{"z": {"x": 0}} }, wantErr: ErrInvalidArtifact},
		{name: "categories share a code", mutate: func(a *Artifact) { a.Categories = map[string]map[string]int{"a": {"x": 0, "y": 0}} }, wantErr: ErrInvalidArtifact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArtifact()
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogisticRegression_Predict(t *testing.T) {
	m, err := NewLogisticRegression(testArtifact())
	require.NoError(t, err)
	ctx := context.Background()

	probabilities, err := m.PredictProba(ctx, [][]float64{{0, 0}, {1, 0}, {0, 3}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probabilities[0], 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-2)), probabilities[1], 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(3)), probabilities[2], 1e-12)

	labels, err := m.Predict(ctx, [][]float64{{0, 0}, {1, 0}, {0, 3}})
	require.NoError(t, err)
	// p == threshold counts as the positive class
	assert.Equal(t, []int{1, 1, 0}, labels)
}

func TestLogisticRegression_ScalerAndThreshold(t *testing.T) {
	a := testArtifact()
	a.Scaler = &Scaler{Mean: []float64{10, 0}, Scale: []float64{2, 1}}
	a.Threshold = 0.9
	m, err := NewLogisticRegression(a)
	require.NoError(t, err)

	// (12-10)/2 = 1 -> z = 2 -> p ~ 0.88 < 0.9
	labels, err := m.Predict(context.Background(), [][]float64{{12, 0}, {14, 0}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, labels)
}

func TestLogisticRegression_InputErrors(t *testing.T) {
	m, err := NewLogisticRegression(testArtifact())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = m.Predict(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyFeatureMatrix)

	_, err = m.Predict(ctx, [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = m.Predict(ctx, [][]float64{{math.NaN(), 0}})
	assert.ErrorIs(t, err, ErrNonFiniteFeature)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Predict(cancelled, [][]float64{{0, 0}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogisticRegression_IsolatedFromCaller(t *testing.T) {
	a := testArtifact()
	a.Categories = map[string]map[string]int{"a": {"x": 1}}
	m, err := NewLogisticRegression(a)
	require.NoError(t, err)

	a.Coefficients[0] = 100
	a.Categories["a"]["x"] = 9
	m.Categories("a")["x"] = 7

	assert.Equal(t, map[string]int{"x": 1}, m.Categories("a"))
	p, err := m.PredictProba(context.Background(), [][]float64{{1, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2)), p[0], 1e-12)
	assert.Nil(t, m.Categories("b"))
}

func TestLoad(t *testing.T) {
	t.Run("json artifact", func(t *testing.T) {
		path := filepath.Join("testdata", "model.json")
		m, err := Load(path)
		require.NoError(t, err)

		info := m.Info()
		assert.Equal(t, "logistic_regression", info.ModelType)
		assert.Equal(t, "test-1", info.Version)
		assert.Equal(t, path, info.Source)
		assert.Equal(t, []string{"a", "b", "PaymentMethod"}, info.FeatureNames)
		assert.Equal(t, DefaultThreshold, info.Threshold)
		assert.False(t, info.Scaled)
		assert.Equal(t, 3, m.Categories("PaymentMethod")["Mailed check"])
		assert.Equal(t, "fixture", info.Metadata["trained_on"])
	})

	t.Run("yaml artifact", func(t *testing.T) {
		m, err := Load(filepath.Join("testdata", "model.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 0.7, m.Info().Threshold)
		assert.True(t, m.Info().Scaled)
		assert.Equal(t, 3, m.NumFeatures())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "nope.json"))
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "model.pkl"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("inconsistent artifact", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "bad_dims.json"))
		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})

	t.Run("truncated json", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "truncated.json"))
		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})
}

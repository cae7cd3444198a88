package model

import (
	"context"
	"fmt"
	"math"
)

// Info summarizes a loaded model for operators.
type Info struct {
	ModelType    string                    `json:"model_type"`
	Version      string                    `json:"version,omitempty"`
	Source       string                    `json:"source,omitempty"`
	FeatureNames []string                  `json:"feature_names"`
	Threshold    float64                   `json:"threshold"`
	Scaled       bool                      `json:"scaled"`
	Categories   map[string]map[string]int `json:"categories,omitempty"`
	Metadata     map[string]string         `json:"metadata,omitempty"`
}

// LogisticRegression is an immutable binary classifier. It is safe for
// concurrent use once constructed.
type LogisticRegression struct {
	artifact Artifact
	source   string
}

// NewLogisticRegression validates the artifact and builds a classifier from it.
func NewLogisticRegression(artifact Artifact) (*LogisticRegression, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &LogisticRegression{artifact: cloneArtifact(artifact)}, nil
}

// NumFeatures is the length every feature vector must have.
func (m *LogisticRegression) NumFeatures() int {
	return len(m.artifact.FeatureNames)
}

// FeatureNames returns the training-time column order.
func (m *LogisticRegression) FeatureNames() []string {
	return append([]string(nil), m.artifact.FeatureNames...)
}

// Categories returns the training-time label encoding for a feature, or nil
// when the artifact did not record one.
func (m *LogisticRegression) Categories(feature string) map[string]int {
	table, ok := m.artifact.Categories[feature]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// Info describes the model.
func (m *LogisticRegression) Info() Info {
	categories := make(map[string]map[string]int, len(m.artifact.Categories))
	for feature := range m.artifact.Categories {
		categories[feature] = m.Categories(feature)
	}
	metadata := make(map[string]string, len(m.artifact.Metadata))
	for k, v := range m.artifact.Metadata {
		metadata[k] = v
	}
	return Info{
		ModelType:    m.artifact.ModelType,
		Version:      m.artifact.Version,
		Source:       m.source,
		FeatureNames: m.FeatureNames(),
		Threshold:    m.artifact.EffectiveThreshold(),
		Scaled:       m.artifact.Scaler != nil,
		Categories:   categories,
		Metadata:     metadata,
	}
}

// PredictProba returns P(class=1) for every row.
func (m *LogisticRegression) PredictProba(ctx context.Context, features [][]float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, ErrEmptyFeatureMatrix
	}

	probabilities := make([]float64, len(features))
	for row, x := range features {
		z, err := m.decision(x)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		probabilities[row] = sigmoid(z)
	}
	return probabilities, nil
}

// Predict returns the class label (0 or 1) for every row.
func (m *LogisticRegression) Predict(ctx context.Context, features [][]float64) ([]int, error) {
	probabilities, err := m.PredictProba(ctx, features)
	if err != nil {
		return nil, err
	}

	threshold := m.artifact.EffectiveThreshold()
	labels := make([]int, len(probabilities))
	for i, p := range probabilities {
		if p >= threshold {
			labels[i] = 1
		}
	}
	return labels, nil
}

func (m *LogisticRegression) decision(x []float64) (float64, error) {
	if len(x) != len(m.artifact.Coefficients) {
		return 0, fmt.Errorf("%w: got %d values, model expects %d", ErrDimensionMismatch, len(x), len(m.artifact.Coefficients))
	}

	z := m.artifact.Intercept
	for i, v := range x {
		if !isFinite(v) {
			return 0, fmt.Errorf("%w: %s", ErrNonFiniteFeature, m.artifact.FeatureNames[i])
		}
		if s := m.artifact.Scaler; s != nil {
			v = (v - s.Mean[i]) / s.Scale[i]
		}
		z += m.artifact.Coefficients[i] * v
	}
	return z, nil
}

// sigmoid is evaluated in the numerically stable form for both signs of z.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func cloneArtifact(a Artifact) Artifact {
	out := a
	out.FeatureNames = append([]string(nil), a.FeatureNames...)
	out.Coefficients = append([]float64(nil), a.Coefficients...)
	if a.Scaler != nil {
		out.Scaler = &Scaler{
			Mean:  append([]float64(nil), a.Scaler.Mean...),
			Scale: append([]float64(nil), a.Scaler.Scale...),
		}
	}
	if a.Categories != nil {
		out.Categories = make(map[string]map[string]int, len(a.Categories))
		for feature, table := range a.Categories {
			copied := make(map[string]int, len(table))
			for k, v := range table {
				copied[k] = v
			}
			out.Categories[feature] = copied
		}
	}
	if a.Metadata != nil {
		out.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

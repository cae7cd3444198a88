package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/churnlens/churn-api/libs/go/constants"
)

// DefaultThreshold is the probability at or above which the positive class wins.
const DefaultThreshold = 0.5

var (
	ErrInvalidArtifact    = errors.New("invalid model artifact")
	ErrUnsupportedModel   = errors.New("unsupported model type")
	ErrUnsupportedFormat  = errors.New("unsupported artifact format")
	ErrDimensionMismatch  = errors.New("feature vector dimension mismatch")
	ErrNonFiniteFeature   = errors.New("feature vector contains a non-finite value")
	ErrEmptyFeatureMatrix = errors.New("no feature vectors supplied")
)

// Artifact is the serialized form of a trained classifier. It is produced by
// the training pipeline and read once at startup.
type Artifact struct {
	ModelType    string                    `json:"model_type" yaml:"model_type"`
	Version      string                    `json:"version,omitempty" yaml:"version,omitempty"`
	FeatureNames []string                  `json:"feature_names" yaml:"feature_names"`
	Coefficients []float64                 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64                   `json:"intercept" yaml:"intercept"`
	Threshold    float64                   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Scaler       *Scaler                   `json:"scaler,omitempty" yaml:"scaler,omitempty"`
	Categories   map[string]map[string]int `json:"categories,omitempty" yaml:"categories,omitempty"`
	Metadata     map[string]string         `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Scaler holds standardization parameters applied before the linear term:
// x' = (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// Validate checks the artifact is internally consistent.
func (a *Artifact) Validate() error {
	if a.ModelType != constants.LogisticRegressionModel {
		return fmt.Errorf("%w: %q", ErrUnsupportedModel, a.ModelType)
	}

	n := len(a.FeatureNames)
	if n == 0 {
		return fmt.Errorf("%w: feature_names is empty", ErrInvalidArtifact)
	}
	if len(a.Coefficients) != n {
		return fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidArtifact, len(a.Coefficients), n)
	}

	seen := make(map[string]struct{}, n)
	for _, name := range a.FeatureNames {
		if name == "" {
			return fmt.Errorf("%w: empty feature name", ErrInvalidArtifact)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = struct{}{}
	}

	for i, w := range a.Coefficients {
		if !isFinite(w) {
			return fmt.Errorf("%w: coefficient %d (%s) is not finite", ErrInvalidArtifact, i, a.FeatureNames[i])
		}
	}
	if !isFinite(a.Intercept) {
		return fmt.Errorf("%w: intercept is not finite", ErrInvalidArtifact)
	}

	if a.Threshold != 0 && (a.Threshold <= 0 || a.Threshold >= 1 || math.IsNaN(a.Threshold)) {
		return fmt.Errorf("%w: threshold %v outside (0,1)", ErrInvalidArtifact, a.Threshold)
	}

	if a.Scaler != nil {
		if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
			return fmt.Errorf("%w: scaler expects %d features", ErrInvalidArtifact, n)
		}
		for i := range a.Scaler.Scale {
			if !isFinite(a.Scaler.Mean[i]) || !isFinite(a.Scaler.Scale[i]) || a.Scaler.Scale[i] == 0 {
				return fmt.Errorf("%w: scaler entry %d (%s) is unusable", ErrInvalidArtifact, i, a.FeatureNames[i])
			}
		}
	}

	for feature, table := range a.Categories {
		if _, ok := seen[feature]; !ok {
			return fmt.Errorf("%w: categories reference unknown feature %q", ErrInvalidArtifact, feature)
		}
		codes := make(map[int]string, len(table))
		for label, code := range table {
			if other, dup := codes[code]; dup {
				return fmt.Errorf("%w: %s labels %q and %q share code %d", ErrInvalidArtifact, feature, other, label, code)
			}
			codes[code] = label
		}
	}

	return nil
}

// EffectiveThreshold returns the configured threshold or DefaultThreshold.
func (a *Artifact) EffectiveThreshold() float64 {
	if a.Threshold == 0 {
		return DefaultThreshold
	}
	return a.Threshold
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/churnlens/churn-api/libs/go/constants"
	"github.com/churnlens/churn-api/libs/go/model"
	"github.com/churnlens/churn-api/libs/go/types/business"
	"github.com/stretchr/testify/require"
)

// ValidPredictionPayload returns a fresh copy of a well-formed request body.
func ValidPredictionPayload() map[string]interface{} {
	return map[string]interface{}{
		"SeniorCitizen":  true,
		"Partner":        false,
		"Tenure":         24,
		"OnlineSecurity": true,
		"OnlineBackup":   false,
		"TechSupport":    false,
		"StreamingTV":    true,
		"PaymentMethod":  "Credit card",
		"MonthlyCharges": 75.50,
		"TotalCharges":   1800.75,
	}
}

// TestArtifact is a small churn model over the request fields. Only
// SeniorCitizen and Tenure carry weight, so tests can steer the label:
// SeniorCitizen with short tenure scores 1, long tenure scores 0.
func TestArtifact() model.Artifact {
	coefficients := make([]float64, len(business.FeatureOrder))
	coefficients[0] = 2.0  // SeniorCitizen
	coefficients[2] = -0.1 // Tenure
	return model.Artifact{
		ModelType:    constants.LogisticRegressionModel,
		Version:      "test",
		FeatureNames: append([]string(nil), business.FeatureOrder...),
		Coefficients: coefficients,
		Intercept:    0,
		Categories: map[string]map[string]int{
			"PaymentMethod": {
				constants.PaymentMethodBankTransfer:    0,
				constants.PaymentMethodCreditCard:      1,
				constants.PaymentMethodElectronicCheck: 2,
				constants.PaymentMethodMailedCheck:     3,
			},
		},
		Metadata: map[string]string{"source": "testutil"},
	}
}

// WriteArtifact writes artifact as JSON under t.TempDir and returns the path.
func WriteArtifact(t *testing.T, artifact model.Artifact) string {
	t.Helper()

	raw, err := json.Marshal(artifact)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

// NewTestModel loads TestArtifact through the regular loader.
func NewTestModel(t *testing.T) *model.LogisticRegression {
	t.Helper()

	m, err := model.Load(WriteArtifact(t, TestArtifact()))
	require.NoError(t, err)
	return m
}

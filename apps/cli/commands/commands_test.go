package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/churnlens/churn-api/libs/go/model"
	"github.com/churnlens/churn-api/libs/go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const yamlRecord = `SeniorCitizen: true
Partner: false
Tenure: 2
OnlineSecurity: true
OnlineBackup: false
TechSupport: false
StreamingTV: true
PaymentMethod: Credit card
MonthlyCharges: 75.5
TotalCharges: 151.0
`

func TestPredict_YAMLRecord(t *testing.T) {
	modelPath := testutil.WriteArtifact(t, testutil.TestArtifact())
	input := writeFile(t, "record.yaml", yamlRecord)

	out, err := runCLI(t, "", "predict", "--model", modelPath, "--input", input)
	require.NoError(t, err)
	assert.Contains(t, out, "prediction=1")
	assert.Contains(t, out, "threshold=0.50")
}

func TestPredict_JSONRecordFromStdin(t *testing.T) {
	modelPath := testutil.WriteArtifact(t, testutil.TestArtifact())
	raw, err := json.Marshal(testutil.ValidPredictionPayload())
	require.NoError(t, err)

	out, err := runCLI(t, string(raw), "predict", "-m", modelPath, "-i", "-", "--json")
	require.NoError(t, err)

	var got predictionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.Prediction)
	assert.InDelta(t, 0.4013, got.Probability, 1e-4)
	assert.Equal(t, model.DefaultThreshold, got.Threshold)
}

func TestPredict_Errors(t *testing.T) {
	modelPath := testutil.WriteArtifact(t, testutil.TestArtifact())

	tests := []struct {
		name    string
		record  string
		wantErr string
	}{
		{
			name:    "missing fields",
			record:  "SeniorCitizen: true\nTenure: 3\n",
			wantErr: "record is missing fields: Partner",
		},
		{
			name:    "unknown payment method",
			record:  strings.Replace(yamlRecord, "Credit card", "Cash", 1),
			wantErr: "invalid payment method",
		},
		{
			name:    "wrong type",
			record:  strings.Replace(yamlRecord, "Tenure: 2", "Tenure: two", 1),
			wantErr: "decode record",
		},
		{
			name:    "not a mapping",
			record:  "- 1\n- 2\n",
			wantErr: "parse record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeFile(t, "record.yaml", tt.record)
			_, err := runCLI(t, "", "predict", "--model", modelPath, "--input", input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPredict_RequiresFlags(t *testing.T) {
	_, err := runCLI(t, "", "predict", "--input", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"model"`)
}

func TestModelInspect(t *testing.T) {
	modelPath := testutil.WriteArtifact(t, testutil.TestArtifact())

	out, err := runCLI(t, "", "model", "inspect", "--model", modelPath)
	require.NoError(t, err)

	var info model.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "logistic_regression", info.ModelType)
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, modelPath, info.Source)
	assert.Len(t, info.FeatureNames, 10)
	assert.Equal(t, 3, info.Categories["PaymentMethod"]["Mailed check"])
}

func TestModelValidate(t *testing.T) {
	t.Run("compatible artifact", func(t *testing.T) {
		modelPath := testutil.WriteArtifact(t, testutil.TestArtifact())
		out, err := runCLI(t, "", "model", "validate", "--model", modelPath)
		require.NoError(t, err)
		assert.Equal(t, "OK\n", out)
	})

	t.Run("wrong feature count", func(t *testing.T) {
		artifact := testutil.TestArtifact()
		artifact.FeatureNames = artifact.FeatureNames[:3]
		artifact.Coefficients = artifact.Coefficients[:3]
		artifact.Categories = nil
		modelPath := testutil.WriteArtifact(t, artifact)

		_, err := runCLI(t, "", "model", "validate", "--model", modelPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 10")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		modelPath := writeFile(t, "model.pkl", "binary")
		_, err := runCLI(t, "", "model", "validate", "--model", modelPath)
		require.ErrorIs(t, err, model.ErrUnsupportedFormat)
	})
}

package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	awsclient "github.com/churnlens/churn-api/libs/go/client/aws"
	"github.com/churnlens/churn-api/libs/go/testutil"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mutate ...func(*Config)) (*gin.Engine, Config) {
	t.Helper()
	testutil.SetupTestEnvironment(t)
	gin.SetMode(gin.TestMode)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.ModelPath = testutil.WriteArtifact(t, testutil.TestArtifact())
	cfg.UsageLogPath = filepath.Join(t.TempDir(), "api_usage.log")
	cfg.RateLimitRPS = 1000
	cfg.RateLimitBurst = 1000
	for _, m := range mutate {
		m(&cfg)
	}

	creds := awsclient.BasicAuthCredentials{Username: testutil.TestUsername, Password: testutil.TestPassword}
	require.NoError(t, Setup(context.Background(), cfg, creds))
	t.Cleanup(Shutdown)

	router := gin.New()
	InitializeRoutes(router)
	return router, cfg
}

func TestPredictEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/predict", "/api/v1/predict"} {
		t.Run("valid request "+path, func(t *testing.T) {
			w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, path, testutil.ValidPredictionPayload()))

			testutil.AssertStatusCode(t, w, http.StatusOK)
			var resp map[string]interface{}
			testutil.DecodeJSON(t, w, &resp)
			prediction, ok := resp["prediction"].(float64)
			require.True(t, ok, "prediction must be a number: %v", resp)
			assert.Contains(t, []float64{0, 1}, prediction)
		})
	}

	t.Run("positive label", func(t *testing.T) {
		payload := testutil.ValidPredictionPayload()
		payload["Tenure"] = 2
		w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", payload))

		testutil.AssertStatusCode(t, w, http.StatusOK)
		assert.JSONEq(t, `{"prediction":1}`, w.Body.String())
	})

	t.Run("negative label", func(t *testing.T) {
		w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", testutil.ValidPredictionPayload()))

		testutil.AssertStatusCode(t, w, http.StatusOK)
		assert.JSONEq(t, `{"prediction":0}`, w.Body.String())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/predict", testutil.ValidPredictionPayload())
		req.SetBasicAuth("wrong_user", "wrong_password")
		w := testutil.Serve(router, req)

		testutil.AssertStatusCode(t, w, http.StatusUnauthorized)
		assert.Equal(t, "Basic", w.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, w.Body.String())
	})

	t.Run("no credentials", func(t *testing.T) {
		w := testutil.Serve(router, testutil.NewJSONRequest(t, http.MethodPost, "/predict", testutil.ValidPredictionPayload()))
		testutil.AssertStatusCode(t, w, http.StatusUnauthorized)
		assert.Equal(t, "Basic", w.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, w.Body.String())
	})

	t.Run("invalid payment method", func(t *testing.T) {
		payload := testutil.ValidPredictionPayload()
		payload["PaymentMethod"] = "Invalid method"
		w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", payload))

		testutil.AssertStatusCode(t, w, http.StatusBadRequest)
		assert.JSONEq(t, `{"detail":"Invalid PaymentMethod"}`, w.Body.String())
	})

	t.Run("missing field", func(t *testing.T) {
		payload := testutil.ValidPredictionPayload()
		delete(payload, "Tenure")
		w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", payload))

		testutil.AssertStatusCode(t, w, http.StatusUnprocessableEntity)
		var resp responses.ValidationErrorResponse
		testutil.DecodeJSON(t, w, &resp)
		require.Len(t, resp.Detail, 1)
		assert.Equal(t, []interface{}{"body", "Tenure"}, resp.Detail[0].Loc)
	})

	t.Run("bad credentials win over a missing field", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/predict", map[string]interface{}{})
		req.SetBasicAuth("wrong_user", "wrong_password")
		w := testutil.Serve(router, req)

		testutil.AssertStatusCode(t, w, http.StatusUnauthorized)
	})

	t.Run("malformed JSON is reported before credentials", func(t *testing.T) {
		for _, setAuth := range []func(*http.Request){
			func(r *http.Request) {},
			func(r *http.Request) { r.SetBasicAuth("wrong_user", "wrong_password") },
		} {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/predict", `{"SeniorCitizen": tru`)
			setAuth(req)
			w := testutil.Serve(router, req)

			testutil.AssertStatusCode(t, w, http.StatusUnprocessableEntity)
			var resp responses.ValidationErrorResponse
			testutil.DecodeJSON(t, w, &resp)
			require.Len(t, resp.Detail, 1)
			assert.Equal(t, "json_invalid", resp.Detail[0].Type)
		}
	})

	t.Run("every payment method is accepted", func(t *testing.T) {
		for _, method := range []string{"Bank transfer", "Credit card", "Electronic check", "Mailed check"} {
			payload := testutil.ValidPredictionPayload()
			payload["PaymentMethod"] = method
			w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", payload))
			testutil.AssertStatusCode(t, w, http.StatusOK)
		}
	})
}

func TestPredictEndpoint_UsageLog(t *testing.T) {
	router, cfg := newTestRouter(t)

	w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", testutil.ValidPredictionPayload()))
	testutil.AssertStatusCode(t, w, http.StatusOK)

	payload := testutil.ValidPredictionPayload()
	payload["PaymentMethod"] = "Cash"
	w = testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", payload))
	testutil.AssertStatusCode(t, w, http.StatusBadRequest)

	raw, err := os.ReadFile(cfg.UsageLogPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}:INFO:User admin accessed the /predict endpoint with data SeniorCitizen=true `)
	for _, line := range lines {
		assert.Regexp(t, pattern, line)
	}
	assert.Contains(t, lines[1], `PaymentMethod="Cash"`)
}

func TestModelAndUsageEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("model info requires auth", func(t *testing.T) {
		w := testutil.Serve(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/v1/model", nil))
		testutil.AssertStatusCode(t, w, http.StatusUnauthorized)
	})

	t.Run("model info", func(t *testing.T) {
		w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodGet, "/api/v1/model", nil))
		testutil.AssertStatusCode(t, w, http.StatusOK)

		var info responses.ModelInfoResponse
		testutil.DecodeJSON(t, w, &info)
		assert.Equal(t, "logistic_regression", info.ModelType)
		assert.Len(t, info.FeatureNames, 10)
		assert.Equal(t, 3, info.Categories["PaymentMethod"]["Mailed check"])
	})

	t.Run("usage counts the caller's predictions", func(t *testing.T) {
		testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", testutil.ValidPredictionPayload()))
		bad := testutil.ValidPredictionPayload()
		bad["PaymentMethod"] = "Cash"
		testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/predict", bad))

		w := testutil.Serve(router, testutil.NewAuthenticatedJSONRequest(t, http.MethodGet, "/api/v1/usage", nil))
		testutil.AssertStatusCode(t, w, http.StatusOK)

		var usage responses.UsageStatsResponse
		testutil.DecodeJSON(t, w, &usage)
		assert.Equal(t, responses.UsageStatsResponse{
			Username:     testutil.TestUsername,
			Total:        2,
			Success:      1,
			ClientErrors: 1,
		}, usage)
	})
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/dev/health", "/ready"} {
		w := testutil.Serve(router, testutil.NewJSONRequest(t, http.MethodGet, path, nil))
		testutil.AssertStatusCode(t, w, http.StatusOK)
	}
}

func TestForceHTTPS(t *testing.T) {
	router, _ := newTestRouter(t, func(c *Config) { c.ForceHTTPS = true })

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "http://api.example.com/predict", testutil.ValidPredictionPayload())
	w := testutil.Serve(router, req)
	testutil.AssertStatusCode(t, w, http.StatusTemporaryRedirect)
	assert.Equal(t, "https://api.example.com/predict", w.Header().Get("Location"))

	req = testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "http://api.example.com/predict", testutil.ValidPredictionPayload())
	req.Header.Set("X-Forwarded-Proto", "https")
	testutil.AssertStatusCode(t, testutil.Serve(router, req), http.StatusOK)
}

func TestSetup_Errors(t *testing.T) {
	testutil.SetupTestEnvironment(t)
	creds := awsclient.BasicAuthCredentials{Username: testutil.TestUsername, Password: testutil.TestPassword}

	base := Config{
		ModelPath:      testutil.WriteArtifact(t, testutil.TestArtifact()),
		UsageLogPath:   filepath.Join(t.TempDir(), "usage.log"),
		RateLimitRPS:   10,
		RateLimitBurst: 10,
	}
	t.Cleanup(Shutdown)

	t.Run("missing model file", func(t *testing.T) {
		cfg := base
		cfg.ModelPath = filepath.Join(t.TempDir(), "missing.json")
		assert.ErrorContains(t, Setup(context.Background(), cfg, creds), "loading model")
	})

	t.Run("model with wrong feature count", func(t *testing.T) {
		artifact := testutil.TestArtifact()
		artifact.FeatureNames = artifact.FeatureNames[:3]
		artifact.Coefficients = artifact.Coefficients[:3]
		cfg := base
		cfg.ModelPath = testutil.WriteArtifact(t, artifact)
		assert.Error(t, Setup(context.Background(), cfg, creds))
	})

	t.Run("missing credentials", func(t *testing.T) {
		assert.ErrorContains(t, Setup(context.Background(), base, awsclient.BasicAuthCredentials{}), "basic auth")
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		cfg := base
		cfg.RedisURL = "redis://127.0.0.1:1/0"
		require.NoError(t, Setup(context.Background(), cfg, creds))
		assert.Nil(t, redisClient)
	})

	t.Run("invalid database url falls through to memory", func(t *testing.T) {
		cfg := base
		cfg.DatabaseURL = "postgres://%zz"
		cfg.RedisURL = "redis://127.0.0.1:1/0"
		require.NoError(t, Setup(context.Background(), cfg, creds))
		assert.Nil(t, dbPool)
		assert.Nil(t, redisClient)
	})
}

func TestLoadConfig(t *testing.T) {
	testutil.SetupTestEnvironment(t)
	t.Setenv("MODEL_PATH", "")
	t.Setenv("USAGE_LOG_PATH", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Stage)
	assert.Equal(t, "logistic_regression_model.json", cfg.ModelPath)
	assert.Equal(t, "api_usage.log", cfg.UsageLogPath)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)

	t.Setenv("GIN_MODE", "debug")
	t.Setenv("STAGE", "prod")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Development)

	t.Setenv("STAGE", "staging")
	_, err = LoadConfig()
	assert.Error(t, err)
}

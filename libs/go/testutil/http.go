package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	TestUsername = "admin"
	TestPassword = "s3cret"
)

// TestContext creates a test Gin context
func TestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	return ctx, recorder
}

// SetupTestEnvironment sets the variables the API reads at startup.
func SetupTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("STAGE", "test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_USERNAME", TestUsername)
	t.Setenv("API_PASSWORD", TestPassword)
	t.Setenv("API_USERNAME_ARN", "")
	t.Setenv("API_PASSWORD_ARN", "")
	t.Setenv("API_CREDENTIALS_ARN", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_URL_ARN", "")
	t.Setenv("FORCE_HTTPS", "false")
}

// NewJSONRequest builds a request with a JSON body. body may be a string,
// []byte, or any value that marshals to JSON; nil sends no body.
func NewJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewBuffer(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedJSONRequest is NewJSONRequest with the test credentials.
func NewAuthenticatedJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	req := NewJSONRequest(t, method, path, body)
	req.SetBasicAuth(TestUsername, TestPassword)
	return req
}

// Serve runs req through handler and returns the recorder.
func Serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals the recorded response body into v.
func DecodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), v), recorder.Body.String())
}

// AssertStatusCode checks HTTP status code
func AssertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if recorder.Code != expected {
		t.Errorf("Expected status code %d, got %d. Response body: %s",
			expected, recorder.Code, recorder.Body.String())
	}
}

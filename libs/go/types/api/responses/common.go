package responses

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// HealthResponse is returned by the liveness check
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse reports whether the service can score requests
type ReadinessResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

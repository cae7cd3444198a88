package constants

// Client-facing error details. Internal causes are logged, never returned.
const (
	InvalidPaymentMethod = "Invalid PaymentMethod"
	PredictionFailed     = "An error occurred during prediction"
	UsageStatsFailed     = "Failed to load usage statistics"
)

// Endpoint paths
const (
	PredictPath = "/predict"
	HealthPath  = "/health"
	ReadyPath   = "/ready"
)

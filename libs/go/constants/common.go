package constants

// Common string constants used throughout the codebase
const (
	// Service identity
	ServiceName = "churn-api"

	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Artifact formats
	JSONFormat = "json"
	YAMLFormat = "yaml"

	// Model types
	LogisticRegressionModel = "logistic_regression"
)

// Payment methods recognized by the churn model
const (
	PaymentMethodBankTransfer    = "Bank transfer"
	PaymentMethodCreditCard      = "Credit card"
	PaymentMethodElectronicCheck = "Electronic check"
	PaymentMethodMailedCheck     = "Mailed check"
)

// Context keys shared between middleware and handlers
const (
	UsernameKey      = "username"
	CorrelationIDKey = "correlationID"
)

package services

import "errors"

var (
	// ErrInvalidPaymentMethod is a client error: the label is not in the encoding table.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrPredictionFailed wraps any failure raised by the classifier itself.
	ErrPredictionFailed = errors.New("prediction failed")
	// ErrIncompatibleModel is returned at startup when the artifact cannot score CustomerRecord vectors.
	ErrIncompatibleModel = errors.New("model is incompatible with the customer feature layout")
)

package interfaces

import (
	"context"

	"github.com/churnlens/churn-api/libs/go/model"
	"github.com/churnlens/churn-api/libs/go/types/business"
)

// Predictor is an opaque trained classifier.
type Predictor interface {
	Predict(ctx context.Context, features [][]float64) ([]int, error)
}

// ModelInspector exposes descriptive metadata about the loaded model.
type ModelInspector interface {
	Info() model.Info
}

// EncodingService turns a customer record into the model's numeric input
type EncodingService interface {
	EncodePaymentMethod(method string) (int, error)
	FeatureVector(record business.CustomerRecord) ([]float64, error)
}

// PredictionService scores customer records
type PredictionService interface {
	Predict(ctx context.Context, username string, record business.CustomerRecord) (int, error)
}

// UsageStatsStore keeps per-user prediction counters
type UsageStatsStore interface {
	Record(ctx context.Context, event business.UsageEvent) error
	Snapshot(ctx context.Context, username string) (business.UsageSnapshot, error)
}

// UsageLog is the append-only per-request audit trail
type UsageLog interface {
	Accessed(username, endpoint string, payload interface{})
	PredictionError(err error)
}

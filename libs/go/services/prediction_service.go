package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/churnlens/churn-api/libs/go/interfaces"
	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/churnlens/churn-api/libs/go/types/business"
	"go.uber.org/zap"
)

// PredictionService runs the encode -> predict pipeline for one record
type PredictionService struct {
	encoder   interfaces.EncodingService
	predictor interfaces.Predictor
	stats     interfaces.UsageStatsStore
	logger    *zap.Logger
}

// NewPredictionService creates a new prediction service. stats may be nil.
func NewPredictionService(encoder interfaces.EncodingService, predictor interfaces.Predictor, stats interfaces.UsageStatsStore) *PredictionService {
	return &PredictionService{
		encoder:   encoder,
		predictor: predictor,
		stats:     stats,
		logger:    logger.Log,
	}
}

// Predict encodes the record and returns the model's label for it.
//
// Errors are classified: ErrInvalidPaymentMethod for an unknown label,
// ErrPredictionFailed for anything raised by the model (panics included).
func (s *PredictionService) Predict(ctx context.Context, username string, record business.CustomerRecord) (prediction int, err error) {
	features, err := s.encoder.FeatureVector(record)
	if err != nil {
		if errors.Is(err, ErrInvalidPaymentMethod) {
			s.recordUsage(ctx, username, business.UsageOutcomeClientError, nil)
			return 0, err
		}
		s.recordUsage(ctx, username, business.UsageOutcomeServerError, nil)
		return 0, fmt.Errorf("%w: encoding: %w", ErrPredictionFailed, err)
	}

	labels, err := s.safePredict(ctx, features)
	if err != nil {
		s.recordUsage(ctx, username, business.UsageOutcomeServerError, nil)
		return 0, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	if len(labels) != 1 {
		s.recordUsage(ctx, username, business.UsageOutcomeServerError, nil)
		return 0, fmt.Errorf("%w: model returned %d labels for 1 row", ErrPredictionFailed, len(labels))
	}

	prediction = labels[0]
	s.logger.Debug("Prediction computed",
		zap.String("username", username),
		zap.Int("prediction", prediction),
	)
	s.recordUsage(ctx, username, business.UsageOutcomeSuccess, &prediction)
	return prediction, nil
}

func (s *PredictionService) safePredict(ctx context.Context, features []float64) (labels []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panicked: %v", r)
		}
	}()
	return s.predictor.Predict(ctx, [][]float64{features})
}

func (s *PredictionService) recordUsage(ctx context.Context, username string, outcome business.UsageOutcome, prediction *int) {
	if s.stats == nil {
		return
	}
	event := business.UsageEvent{
		Username:   username,
		Outcome:    outcome,
		Prediction: prediction,
	}
	if err := s.stats.Record(ctx, event); err != nil {
		s.logger.Warn("Failed to record usage stats",
			zap.String("username", username),
			zap.String("outcome", string(outcome)),
			zap.Error(err),
		)
	}
}

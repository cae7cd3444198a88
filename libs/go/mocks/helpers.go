package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockPredictorForTest creates a new mock Predictor for testing
func NewMockPredictorForTest(t *testing.T) *MockPredictor {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockPredictor(ctrl)
}

// NewMockPredictionServiceForTest creates a new mock PredictionService for testing
func NewMockPredictionServiceForTest(t *testing.T) *MockPredictionService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockPredictionService(ctrl)
}

// NewMockUsageStatsStoreForTest creates a new mock UsageStatsStore for testing
func NewMockUsageStatsStoreForTest(t *testing.T) *MockUsageStatsStore {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockUsageStatsStore(ctrl)
}

// NewMockUsageLogForTest creates a new mock UsageLog for testing
func NewMockUsageLogForTest(t *testing.T) *MockUsageLog {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockUsageLog(ctrl)
}

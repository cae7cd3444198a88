package handlers

import (
	"github.com/churnlens/churn-api/libs/go/interfaces"
)

// HandlerFactory creates handlers with proper dependency injection
type HandlerFactory struct {
	predictionService interfaces.PredictionService
	modelInspector    interfaces.ModelInspector
	usageStats        interfaces.UsageStatsStore
	usageLog          interfaces.UsageLog
}

// HandlerDependencies holds everything the handlers need
type HandlerDependencies struct {
	PredictionService interfaces.PredictionService
	ModelInspector    interfaces.ModelInspector
	UsageStats        interfaces.UsageStatsStore
	UsageLog          interfaces.UsageLog
}

func NewHandlerFactory(deps HandlerDependencies) *HandlerFactory {
	return &HandlerFactory{
		predictionService: deps.PredictionService,
		modelInspector:    deps.ModelInspector,
		usageStats:        deps.UsageStats,
		usageLog:          deps.UsageLog,
	}
}

func (f *HandlerFactory) NewPredictionHandler() *PredictionHandler {
	return NewPredictionHandler(f.predictionService, f.usageLog)
}

func (f *HandlerFactory) NewModelHandler() *ModelHandler {
	return NewModelHandler(f.modelInspector)
}

func (f *HandlerFactory) NewUsageHandler() *UsageHandler {
	return NewUsageHandler(f.usageStats)
}

func (f *HandlerFactory) NewHealthHandler() *HealthHandler {
	return NewHealthHandler(f.modelInspector)
}

package helpers

import "github.com/churnlens/churn-api/libs/go/constants"

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = "dev"
	StageLocal = "local"
	StageTest  = "test"
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal, StageTest:
		return true
	default:
		return false
	}
}

// IsDeployedStage reports whether the stage runs behind real infrastructure
// (Secrets Manager, Lambda) rather than on a developer machine.
func IsDeployedStage(stage string) bool {
	return stage == StageProd || stage == StageDev
}

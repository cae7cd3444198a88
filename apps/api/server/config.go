package server

import (
	"fmt"
	"os"

	"github.com/churnlens/churn-api/libs/go/helpers"
)

const (
	defaultPort           = "8000"
	defaultModelPath      = "logistic_regression_model.json"
	defaultUsageLogPath   = "api_usage.log"
	defaultRateLimitRPS   = 50
	defaultRateLimitBurst = 100
)

// Config is the runtime configuration read from the environment.
type Config struct {
	Stage              string
	Port               string
	ModelPath          string
	UsageLogPath       string
	DatabaseURL        string
	RedisURL           string
	RateLimitRPS       int
	RateLimitBurst     int
	ForceHTTPS         bool
	CORSAllowedOrigins []string
	Development        bool
}

// LoadConfig reads Config from the environment. STAGE defaults to local.
// Body logging (Development) is never enabled on deployed stages.
func LoadConfig() (Config, error) {
	stage := helpers.GetEnvWithDefault("STAGE", helpers.StageLocal)
	if !helpers.IsValidStage(stage) {
		return Config{}, fmt.Errorf("invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal, helpers.StageTest)
	}

	origins := helpers.SplitCSV(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return Config{
		Stage:              stage,
		Port:               helpers.GetEnvWithDefault("PORT", defaultPort),
		ModelPath:          helpers.GetEnvWithDefault("MODEL_PATH", defaultModelPath),
		UsageLogPath:       helpers.GetEnvWithDefault("USAGE_LOG_PATH", defaultUsageLogPath),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RateLimitRPS:       helpers.GetEnvInt("RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:     helpers.GetEnvInt("RATE_LIMIT_BURST", defaultRateLimitBurst),
		ForceHTTPS:         helpers.GetEnvBool("FORCE_HTTPS", false),
		CORSAllowedOrigins: origins,
		Development:        os.Getenv("GIN_MODE") != "release" && !helpers.IsDeployedStage(stage),
	}, nil
}

package responses

import "github.com/churnlens/churn-api/libs/go/model"

// PredictionResponse is returned for a scored customer.
type PredictionResponse struct {
	Prediction int `json:"prediction" example:"0"`
}

// DetailResponse carries a single human readable error detail.
type DetailResponse struct {
	Detail string `json:"detail" example:"Invalid PaymentMethod"`
}

// ValidationIssue describes one schema violation in the request body.
type ValidationIssue struct {
	Type  string        `json:"type"`
	Loc   []interface{} `json:"loc"`
	Msg   string        `json:"msg"`
	Input interface{}   `json:"input,omitempty"`
}

// ValidationErrorResponse is returned with 422 when the body fails the schema.
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

// ModelInfoResponse describes the loaded model.
type ModelInfoResponse = model.Info

// UsageStatsResponse reports per-user prediction counters.
type UsageStatsResponse struct {
	Username     string `json:"username"`
	Total        int64  `json:"total"`
	Success      int64  `json:"success"`
	ClientErrors int64  `json:"client_errors"`
	ServerErrors int64  `json:"server_errors"`
	Positive     int64  `json:"positive_predictions"`
}

package business

import (
	"fmt"
	"strconv"
)

// CustomerRecord is the set of customer attributes the churn model scores.
// It lives for a single request.
type CustomerRecord struct {
	SeniorCitizen  bool
	Partner        bool
	Tenure         int
	OnlineSecurity bool
	OnlineBackup   bool
	TechSupport    bool
	StreamingTV    bool
	PaymentMethod  string
	MonthlyCharges float64
	TotalCharges   float64
}

// String renders the record as space separated field=value pairs, the shape
// written to the usage log.
func (r CustomerRecord) String() string {
	return fmt.Sprintf(
		"SeniorCitizen=%t Partner=%t Tenure=%d OnlineSecurity=%t OnlineBackup=%t TechSupport=%t StreamingTV=%t PaymentMethod=%s MonthlyCharges=%s TotalCharges=%s",
		r.SeniorCitizen,
		r.Partner,
		r.Tenure,
		r.OnlineSecurity,
		r.OnlineBackup,
		r.TechSupport,
		r.StreamingTV,
		strconv.Quote(r.PaymentMethod),
		strconv.FormatFloat(r.MonthlyCharges, 'f', -1, 64),
		strconv.FormatFloat(r.TotalCharges, 'f', -1, 64),
	)
}

// FeatureOrder is the column order of the encoded feature vector.
var FeatureOrder = []string{
	"SeniorCitizen",
	"Partner",
	"Tenure",
	"OnlineSecurity",
	"OnlineBackup",
	"TechSupport",
	"StreamingTV",
	"PaymentMethod",
	"MonthlyCharges",
	"TotalCharges",
}

// UsageOutcome classifies how a prediction request ended.
type UsageOutcome string

const (
	UsageOutcomeSuccess     UsageOutcome = "success"
	UsageOutcomeClientError UsageOutcome = "client_error"
	UsageOutcomeServerError UsageOutcome = "server_error"
)

// UsageEvent is one scored (or rejected) prediction call.
type UsageEvent struct {
	Username   string
	Outcome    UsageOutcome
	Prediction *int
}

// UsageSnapshot aggregates usage for one user.
type UsageSnapshot struct {
	Username     string
	Total        int64
	Success      int64
	ClientErrors int64
	ServerErrors int64
	Positive     int64
}

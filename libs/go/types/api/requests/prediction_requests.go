package requests

import "github.com/churnlens/churn-api/libs/go/types/business"

// PredictionRequest represents the request body for scoring one customer.
// Field names match the column names the model was trained on.
type PredictionRequest struct {
	SeniorCitizen  bool    `json:"SeniorCitizen" yaml:"SeniorCitizen" example:"true"`
	Partner        bool    `json:"Partner" yaml:"Partner" example:"false"`
	Tenure         int     `json:"Tenure" yaml:"Tenure" example:"24"`
	OnlineSecurity bool    `json:"OnlineSecurity" yaml:"OnlineSecurity" example:"true"`
	OnlineBackup   bool    `json:"OnlineBackup" yaml:"OnlineBackup" example:"false"`
	TechSupport    bool    `json:"TechSupport" yaml:"TechSupport" example:"false"`
	StreamingTV    bool    `json:"StreamingTV" yaml:"StreamingTV" example:"true"`
	PaymentMethod  string  `json:"PaymentMethod" yaml:"PaymentMethod" example:"Credit card"`
	MonthlyCharges float64 `json:"MonthlyCharges" yaml:"MonthlyCharges" example:"75.5"`
	TotalCharges   float64 `json:"TotalCharges" yaml:"TotalCharges" example:"1800.75"`
}

// ToRecord converts the wire request into the domain record.
func (r PredictionRequest) ToRecord() business.CustomerRecord {
	return business.CustomerRecord{
		SeniorCitizen:  r.SeniorCitizen,
		Partner:        r.Partner,
		Tenure:         r.Tenure,
		OnlineSecurity: r.OnlineSecurity,
		OnlineBackup:   r.OnlineBackup,
		TechSupport:    r.TechSupport,
		StreamingTV:    r.StreamingTV,
		PaymentMethod:  r.PaymentMethod,
		MonthlyCharges: r.MonthlyCharges,
		TotalCharges:   r.TotalCharges,
	}
}

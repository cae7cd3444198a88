package middleware

// PredictionInputValidation describes the customer record accepted by the
// prediction endpoints. Extra fields are ignored.
var PredictionInputValidation = ValidationConfig{
	MaxBodySize:        64 * 1024,
	AllowUnknownFields: true,
	Rules: []ValidationRule{
		{Field: "SeniorCitizen", Type: TypeBoolean, Required: true},
		{Field: "Partner", Type: TypeBoolean, Required: true},
		{Field: "Tenure", Type: TypeInt, Required: true},
		{Field: "OnlineSecurity", Type: TypeBoolean, Required: true},
		{Field: "OnlineBackup", Type: TypeBoolean, Required: true},
		{Field: "TechSupport", Type: TypeBoolean, Required: true},
		{Field: "StreamingTV", Type: TypeBoolean, Required: true},
		{Field: "PaymentMethod", Type: TypeString, Required: true},
		{Field: "MonthlyCharges", Type: TypeNumber, Required: true},
		{Field: "TotalCharges", Type: TypeNumber, Required: true},
	},
}

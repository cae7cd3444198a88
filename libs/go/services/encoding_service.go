package services

import (
	"fmt"
	"sort"

	"github.com/churnlens/churn-api/libs/go/constants"
	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/churnlens/churn-api/libs/go/types/business"
	"go.uber.org/zap"
)

// PaymentMethodFeature is the feature name carrying the encoded payment method.
const PaymentMethodFeature = "PaymentMethod"

// DefaultPaymentMethodCodes is the training-time label encoding: labels sorted
// alphabetically and numbered from zero.
var DefaultPaymentMethodCodes = map[string]int{
	constants.PaymentMethodBankTransfer:    0,
	constants.PaymentMethodCreditCard:      1,
	constants.PaymentMethodElectronicCheck: 2,
	constants.PaymentMethodMailedCheck:     3,
}

// EncodingService maps customer records onto the model's feature layout
type EncodingService struct {
	paymentMethodCodes map[string]int
	logger             *zap.Logger
}

// NewEncodingService creates an encoder. An empty table falls back to
// DefaultPaymentMethodCodes.
func NewEncodingService(paymentMethodCodes map[string]int) *EncodingService {
	table := paymentMethodCodes
	if len(table) == 0 {
		table = DefaultPaymentMethodCodes
	}

	copied := make(map[string]int, len(table))
	for label, code := range table {
		copied[label] = code
	}

	return &EncodingService{
		paymentMethodCodes: copied,
		logger:             logger.Log,
	}
}

// EncodePaymentMethod returns the integer code for a payment method label.
// Matching is exact: the model never saw any other spelling.
func (s *EncodingService) EncodePaymentMethod(method string) (int, error) {
	code, ok := s.paymentMethodCodes[method]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	return code, nil
}

// PaymentMethods lists the accepted labels ordered by code.
func (s *EncodingService) PaymentMethods() []string {
	labels := make([]string, 0, len(s.paymentMethodCodes))
	for label := range s.paymentMethodCodes {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return s.paymentMethodCodes[labels[i]] < s.paymentMethodCodes[labels[j]]
	})
	return labels
}

// FeatureVector encodes a record in business.FeatureOrder.
func (s *EncodingService) FeatureVector(record business.CustomerRecord) ([]float64, error) {
	paymentCode, err := s.EncodePaymentMethod(record.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return []float64{
		boolToFloat(record.SeniorCitizen),
		boolToFloat(record.Partner),
		float64(record.Tenure),
		boolToFloat(record.OnlineSecurity),
		boolToFloat(record.OnlineBackup),
		boolToFloat(record.TechSupport),
		boolToFloat(record.StreamingTV),
		float64(paymentCode),
		record.MonthlyCharges,
		record.TotalCharges,
	}, nil
}

// CheckModelCompatibility verifies a model's feature list against
// business.FeatureOrder. A count mismatch is fatal; differently named columns
// in the same positions are only logged, since some training pipelines
// export generic names (x0, x1, ...).
func (s *EncodingService) CheckModelCompatibility(featureNames []string) error {
	if len(featureNames) != len(business.FeatureOrder) {
		return fmt.Errorf("%w: model has %d features, expected %d", ErrIncompatibleModel, len(featureNames), len(business.FeatureOrder))
	}

	for i, name := range featureNames {
		if name != business.FeatureOrder[i] {
			s.logger.Warn("Model feature name differs from request field",
				zap.Int("position", i),
				zap.String("model_feature", name),
				zap.String("request_field", business.FeatureOrder[i]),
			)
		}
	}
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

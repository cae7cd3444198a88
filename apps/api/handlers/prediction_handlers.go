package handlers

import (
	"errors"
	"net/http"

	"github.com/churnlens/churn-api/apps/api/constants"
	"github.com/churnlens/churn-api/libs/go/client/auth"
	"github.com/churnlens/churn-api/libs/go/interfaces"
	"github.com/churnlens/churn-api/libs/go/services"
	"github.com/churnlens/churn-api/libs/go/types/api/requests"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
)

// PredictionHandler serves the churn prediction endpoint
type PredictionHandler struct {
	service interfaces.PredictionService
	usage   interfaces.UsageLog
}

func NewPredictionHandler(service interfaces.PredictionService, usage interfaces.UsageLog) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		usage:   usage,
	}
}

// Predict godoc
// @Summary Predict customer churn
// @Description Scores one customer record with the loaded churn model and returns 1 when the customer is predicted to churn
// @Tags prediction
// @Accept json
// @Produce json
// @Param request body requests.PredictionRequest true "Customer attributes"
// @Success 200 {object} responses.PredictionResponse
// @Failure 400 {object} responses.DetailResponse
// @Failure 401 {object} responses.DetailResponse
// @Failure 422 {object} responses.ValidationErrorResponse
// @Failure 500 {object} responses.DetailResponse
// @Security BasicAuth
// @Router /predict [post]
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req requests.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// the schema middleware rejects bad bodies first; this only guards direct use
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Detail: []responses.ValidationIssue{{
				Type: "value_error",
				Loc:  []interface{}{"body"},
				Msg:  err.Error(),
			}},
		})
		return
	}

	username := auth.GetUsername(c)
	record := req.ToRecord()

	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = constants.PredictPath
	}
	h.usage.Accessed(username, endpoint, record)

	prediction, err := h.service.Predict(c.Request.Context(), username, record)
	switch {
	case err == nil:
		sendSuccess(c, http.StatusOK, responses.PredictionResponse{Prediction: prediction})
	case errors.Is(err, services.ErrInvalidPaymentMethod):
		sendDetail(c, http.StatusBadRequest, constants.InvalidPaymentMethod, err)
	default:
		h.usage.PredictionError(err)
		sendDetail(c, http.StatusInternalServerError, constants.PredictionFailed, err)
	}
}

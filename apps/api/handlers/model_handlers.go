package handlers

import (
	"net/http"

	"github.com/churnlens/churn-api/libs/go/interfaces"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
)

// ModelHandler exposes metadata about the loaded model
type ModelHandler struct {
	inspector interfaces.ModelInspector
}

func NewModelHandler(inspector interfaces.ModelInspector) *ModelHandler {
	return &ModelHandler{inspector: inspector}
}

// GetModelInfo godoc
// @Summary Describe the loaded model
// @Description Returns the model type, version, feature order, threshold and category encodings
// @Tags model
// @Produce json
// @Success 200 {object} responses.ModelInfoResponse
// @Failure 401 {object} responses.DetailResponse
// @Security BasicAuth
// @Router /api/v1/model [get]
func (h *ModelHandler) GetModelInfo(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.ModelInfoResponse(h.inspector.Info()))
}

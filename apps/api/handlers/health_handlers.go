package handlers

import (
	"net/http"

	"github.com/churnlens/churn-api/libs/go/interfaces"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	inspector interfaces.ModelInspector
}

// NewHealthHandler takes the loaded model; nil means none is loaded yet.
func NewHealthHandler(inspector interfaces.ModelInspector) *HealthHandler {
	return &HealthHandler{inspector: inspector}
}

// Use types from the centralized packages
type (
	HealthResponse    = responses.HealthResponse
	ReadinessResponse = responses.ReadinessResponse
)

// Health godoc
// @Summary Check the health of the server
// @Description Returns a simple "ok" status
// @Tags health
// @Produce json
// @Success 200 {object} responses.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready godoc
// @Summary Check the server can score requests
// @Description Returns 503 until a model is loaded
// @Tags health
// @Produce json
// @Success 200 {object} responses.ReadinessResponse
// @Failure 503 {object} responses.ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.inspector == nil {
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, ReadinessResponse{Status: "ready", ModelLoaded: true})
}

package handlers

import (
	"net/http"

	"github.com/churnlens/churn-api/apps/api/constants"
	"github.com/churnlens/churn-api/libs/go/client/auth"
	"github.com/churnlens/churn-api/libs/go/interfaces"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
)

// UsageHandler reports the caller's own prediction counters
type UsageHandler struct {
	stats interfaces.UsageStatsStore
}

func NewUsageHandler(stats interfaces.UsageStatsStore) *UsageHandler {
	return &UsageHandler{stats: stats}
}

// GetUsage godoc
// @Summary Get usage statistics
// @Description Returns prediction counters for the authenticated user
// @Tags usage
// @Produce json
// @Success 200 {object} responses.UsageStatsResponse
// @Failure 401 {object} responses.DetailResponse
// @Failure 500 {object} responses.ErrorResponse
// @Security BasicAuth
// @Router /api/v1/usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	username := auth.GetUsername(c)

	snap, err := h.stats.Snapshot(c.Request.Context(), username)
	if err != nil {
		sendError(c, http.StatusInternalServerError, constants.UsageStatsFailed, err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.UsageStatsResponse{
		Username:     snap.Username,
		Total:        snap.Total,
		Success:      snap.Success,
		ClientErrors: snap.ClientErrors,
		ServerErrors: snap.ServerErrors,
		Positive:     snap.Positive,
	})
}

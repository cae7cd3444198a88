package handlers

import (
	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/churnlens/churn-api/libs/go/middleware"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Use types from the centralized packages
type (
	ErrorResponse           = responses.ErrorResponse
	DetailResponse          = responses.DetailResponse
	ValidationErrorResponse = responses.ValidationErrorResponse
)

func requestFields(c *gin.Context, err error) []zap.Field {
	return []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
	}
}

// sendError logs err and responds with message and the correlation ID
func sendError(c *gin.Context, statusCode int, message string, err error) {
	logger.Error(message, requestFields(c, err)...)

	c.JSON(statusCode, ErrorResponse{
		Error:         message,
		CorrelationID: middleware.GetCorrelationID(c),
	})
}

// sendDetail responds with a {"detail": ...} body. 5xx causes are logged as
// errors, anything else as a warning.
func sendDetail(c *gin.Context, statusCode int, detail string, err error) {
	if statusCode >= 500 {
		logger.Error(detail, requestFields(c, err)...)
	} else {
		logger.Warn(detail, requestFields(c, err)...)
	}

	c.JSON(statusCode, DetailResponse{Detail: detail})
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

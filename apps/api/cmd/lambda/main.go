//go:build lambda
// +build lambda

package main

import (
	"context"

	_ "github.com/churnlens/churn-api/apps/api/docs"
	"github.com/churnlens/churn-api/apps/api/server"
	"github.com/churnlens/churn-api/libs/go/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Churn Prediction API
// @version         1.0
// @description     Scores customers with a pre-trained churn classifier.

// @BasePath  /

// @securityDefinitions.basic BasicAuth

var ginLambda *ginadapter.GinLambda

func init() {
	server.InitializeHandlers()

	r := gin.Default()
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Authorization is dropped before dumping the request.
	debugReq := req
	debugReq.Headers = redactHeaders(req.Headers)
	debugReq.MultiValueHeaders = nil
	debugReq.Body = ""
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.String("request", spew.Sdump(debugReq)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func redactHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		switch k {
		case "Authorization", "authorization", "Cookie", "cookie":
			out[k] = "[REDACTED]"
		default:
			out[k] = v
		}
	}
	return out
}

func main() {
	defer server.Shutdown()
	lambda.Start(Handler)
}

//go:build !lambda
// +build !lambda

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/churnlens/churn-api/apps/api/docs"
	"github.com/churnlens/churn-api/apps/api/server"
	"github.com/churnlens/churn-api/libs/go/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title           Churn Prediction API
// @version         1.0
// @description     Scores customers with a pre-trained churn classifier.

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.basic BasicAuth

func main() {
	if err := godotenv.Load("../../.env"); err != nil {
		// Missing .env is normal outside local development.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := server.InitializeHandlers()
	defer server.Shutdown()

	r := gin.Default()
	server.InitializeRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("stage", cfg.Stage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

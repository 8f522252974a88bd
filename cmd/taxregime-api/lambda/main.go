//go:build lambda
// +build lambda

package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"go.uber.org/zap"

	"github.com/rgehrsitz/taxregime/internal/api"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/logging"
)

var (
	ginLambda *ginadapter.GinLambda
	logger    *zap.Logger
)

func init() {
	cfg, err := config.ServerConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err = logging.New(cfg.LogLevel, cfg.Stage)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	regimes, err := config.NewInputParser().LoadRegimesOrDefault(cfg.RegimesFile)
	if err != nil {
		logger.Fatal("Failed to load regimes", zap.String("file", cfg.RegimesFile), zap.Error(err))
	}

	ginLambda = ginadapter.New(api.NewServer(cfg, regimes, logger).Router())
}

// Handler proxies an API Gateway request through the gin router
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logging.DebugDump(logger, "Received Lambda request", "request", req, zap.String("path", req.Path))

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer func() { _ = logger.Sync() }()
	lambda.Start(Handler)
}

// Команда lambda запускает навык как функцию AWS Lambda.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/config"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/skill"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/telemetry"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/vehicle"
)

const (
	serviceName     = "vehicle-voice-skill"
	shutdownTimeout = 2 * time.Second
)

type flusher interface {
	ForceFlush(ctx context.Context) error
}

type handleFunc func(ctx context.Context, req models.Request) (*models.Response, error)

// flushing сбрасывает спаны после каждого вызова: между вызовами среда
// заморожена и батчер не успевает отправить их сам.
func flushing(h handleFunc, tp flusher) handleFunc {
	return func(ctx context.Context, req models.Request) (*models.Response, error) {
		resp, err := h(ctx, req)
		if ferr := tp.ForceFlush(ctx); ferr != nil {
			logger.Log.Warn("trace flush failed", zap.Error(ferr))
		}
		return resp, err
	}
}

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	if err := logger.Initialize(level); err != nil {
		panic(err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config.json"
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Log.Fatal("cannot load config", zap.String("path", path), zap.Error(err))
	}

	tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.TraceExporter, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Fatal("cannot init tracer", zap.Error(err))
	}

	client := vehicle.NewBreaker(
		vehicle.NewHTTPClient(vehicle.HTTPConfig{
			BaseURL:        cfg.APIURL,
			ClientID:       cfg.ClientID,
			ClientSecret:   cfg.ClientSecret,
			Timeout:        cfg.CallTimeout,
			TracerProvider: tp,
		}),
		vehicle.DefaultBreakerSettings("vehicle-api"),
	)

	lambda.StartWithOptions(
		flushing(skill.New(cfg, client).Handle, tp),
		lambda.WithEnableSIGTERM(func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Log.Error("tracer provider shutdown failed", zap.Error(err))
			}
		}),
	)
}

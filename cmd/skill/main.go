package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/config"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/skill"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/telemetry"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/vehicle"
)

const (
	serviceName     = "vehicle-voice-skill"
	shutdownTimeout = 5 * time.Second
)

func main() {
	parseFlags()
	if err := run(); err != nil {
		panic(err)
	}
}

func gzipMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			defer func(cw *compressWriter) {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}(cw)
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer func(cr *compressReader) {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}(cr)
		}

		h.ServeHTTP(ow, r)
	}
}

func newRouter(a *app) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", logger.RequestLogger(gzipMiddleware(a.webhook)))
	return mux
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.InitTracer(ctx, serviceName, cfg.TraceExporter, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("tracer provider shutdown failed", zap.Error(err))
		}
	}()

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
	appInstance := newApp(skill.New(cfg, client))

	logger.Log.Info("Running server",
		zap.String("address", flagRunAddr),
		zap.String("vehicle", cfg.VehicleName),
		zap.String("traceExporter", cfg.TraceExporter),
	)

	srv := &http.Server{Addr: flagRunAddr, Handler: newRouter(appInstance)}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enre-reclamos/internal/api"
	"enre-reclamos/internal/app"
	"enre-reclamos/internal/common/config"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/observability"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console", "stderr")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog.With(zap.String("service", "control-api")))

	zapLog.Info("Starting control API...", zap.String("version", cfg.App.Version), zap.String("address", cfg.Server.Address))

	obs := observability.New("control-api")
	defer obs.Shutdown()

	ctx := context.Background()

	clients, err := app.NewClients(ctx, cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws clients failed", zap.Error(err))
	}

	ready := map[string]api.ReadinessCheck{}
	redisClient, guard, err := app.ConnectGuard(ctx, cfg.Redis, log)
	if err != nil {
		zapLog.Warn("submission guard unavailable", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		ready["redis"] = redisClient.Ping
	}

	submitter, err := app.NewSubmitHandler(cfg, clients, guard, obs, log)
	if err != nil {
		zapLog.Fatal("submit handler init failed", zap.Error(err))
	}
	lister, err := app.NewListHandler(cfg, clients, log)
	if err != nil {
		zapLog.Fatal("list handler init failed", zap.Error(err))
	}
	toggler, err := app.NewToggleService(cfg, clients, obs, log)
	if err != nil {
		zapLog.Fatal("toggle service init failed", zap.Error(err))
	}

	server, err := api.NewServer("ENREClamos", cfg.App.Version, cfg.Schedule.ValidationCode, api.Dependencies{
		Logger:    log,
		Submitter: submitter,
		Lister:    lister,
		Toggler:   toggler,
		Ready:     ready,
	})
	if err != nil {
		zapLog.Fatal("control api init failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		// A manual run may wait for the full form timeout.
		WriteTimeout: cfg.Claim.Timeout + 15*time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Control API stopped")
}

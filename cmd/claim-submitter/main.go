package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"enre-reclamos/internal/app"
	"enre-reclamos/internal/common/config"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/observability"
	"enre-reclamos/internal/models"
	submitclaim "enre-reclamos/internal/workers/claims/submit-claim"

	"github.com/aws/aws-lambda-go/lambda"
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
	log := logger.NewZapAdapter(zapLog.With(zap.String("service", "claim-submitter")))

	zapLog.Info("Starting claim submitter...",
		zap.String("version", cfg.App.Version),
		zap.Bool("dryRun", cfg.Claim.DryRun),
		zap.Bool("hosted", cfg.App.Hosted()),
	)

	obs := observability.New("claim-submitter")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, err := app.NewClients(ctx, cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws clients failed", zap.Error(err))
	}

	redisClient, guard, err := app.ConnectGuard(ctx, cfg.Redis, log)
	if err != nil {
		// Fail open: the claim runs unguarded.
		zapLog.Warn("submission guard unavailable", zap.Error(err))
	}
	closeRedis := func() {}
	if redisClient != nil {
		closeRedis = func() { _ = redisClient.Close() }
		defer closeRedis()
	}

	handler, err := app.NewSubmitHandler(cfg, clients, guard, obs, log)
	if err != nil {
		zapLog.Fatal("submit handler init failed", zap.Error(err))
	}

	if cfg.App.Hosted() {
		// StartWithOptions never returns, so deferred calls do not run here.
		lambda.StartWithOptions(invoke(handler), lambda.WithEnableSIGTERM(
			onShutdown(zapLog, obs.Shutdown, closeRedis, func() { _ = zapLog.Sync() }),
		))
		return
	}

	output, execErr := handler.Execute(ctx, &submitclaim.Input{Trigger: "cli"})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		zapLog.Error("output encode failed", zap.Error(err))
	}

	if execErr != nil && exitCode(output.Outcome) != 0 {
		zapLog.Sync()
		obs.Shutdown()
		os.Exit(exitCode(output.Outcome))
	}
}

type claimHandler interface {
	Execute(ctx context.Context, input *submitclaim.Input) (*submitclaim.Output, error)
}

// invoke adapts the handler to the Lambda runtime. Outcomes travel in the
// payload; a returned error triggers a runtime retry.
func invoke(handler claimHandler) func(context.Context, *submitclaim.Input) (*submitclaim.Output, error) {
	return func(ctx context.Context, input *submitclaim.Input) (*submitclaim.Output, error) {
		if input == nil {
			input = &submitclaim.Input{Trigger: "schedule"}
		}
		output, _ := handler.Execute(ctx, input)
		return output, nil
	}
}

// onShutdown runs steps in order once the runtime signals SIGTERM.
func onShutdown(log *zap.Logger, steps ...func()) func() {
	return func() {
		log.Info("Shutdown signal received")
		for _, step := range steps {
			step()
		}
	}
}

// exitCode treats a duplicate claim as a normal run.
func exitCode(outcome models.Outcome) int {
	switch outcome {
	case models.OutcomeClaimed, models.OutcomeDuplicate:
		return 0
	case models.OutcomeInProgress:
		return 3
	default:
		return 1
	}
}

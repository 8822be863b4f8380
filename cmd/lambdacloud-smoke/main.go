package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"
	"github.com/jaysparkx/LambdaCloudWrapper/config"
	"github.com/jaysparkx/LambdaCloudWrapper/lambdacloud"
	"github.com/jaysparkx/LambdaCloudWrapper/logutil"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Smoke run exited with an error")
	}

	log.Info().Msg("Smoke run complete")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logutil.New(os.Stderr, cfg.LogLevel, cfg.LogConsole)
	log.Logger = logger
	zerolog.SetGlobalLevel(logutil.ParseZerologLevel(cfg.LogLevel))

	runID := uuid.NewString()
	logger = logger.With().Str("run_id", runID).Logger()

	client, err := lambdacloud.NewFromConfig(cfg,
		lambdacloud.WithLogger(logger),
		lambdacloud.WithRequestIDKey(runIDKey{}),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &smoke{
		runID:          runID,
		client:         client,
		clock:          clock.NewClock(),
		logger:         logger,
		launch:         cfg.SmokeLaunch,
		keyPrefix:      cfg.SmokeKeyPrefix,
		instancePrefix: cfg.SmokeInstancePrefix,
		pollInterval:   cfg.SmokePollInterval,
		activeTimeout:  cfg.SmokeActiveTimeout,
	}

	return s.run(ctx)
}

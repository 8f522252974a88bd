package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/taxregime/internal/api"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		port    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Settings come from the environment, after loading
the .env file if present: TAXREGIME_PORT, TAXREGIME_STAGE, LOG_LEVEL,
TAXREGIME_REGIMES_FILE, TAXREGIME_ASSESSMENT_YEAR and CORS_ALLOWED_ORIGINS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}

			logger, err := logging.New(cfg.LogLevel, cfg.Stage)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			regimes, err := config.NewInputParser().LoadRegimesOrDefault(cfg.RegimesFile)
			if err != nil {
				logger.Error("Failed to load regimes", zap.String("file", cfg.RegimesFile), zap.Error(err))
				return err
			}
			logger.Info("Loaded regimes",
				zap.Strings("years", regimes.AvailableYears()),
				zap.String("default_year", regimes.DefaultYear))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(cfg, regimes, logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides TAXREGIME_PORT)")
	return cmd
}

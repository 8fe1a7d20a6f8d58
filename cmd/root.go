package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/m04kA/bookit/internal/config"
	"github.com/m04kA/bookit/pkg/logger"
	"github.com/m04kA/bookit/pkg/metrics"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "bookit",
		Short:         "Reservation service: slots, booking policy, admin review",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.toml", "path to the TOML config")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional .env file with BOOKIT_* overrides")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newAccountCmd(opts))

	return root
}

// load читает конфигурацию и создаёт логгер
func (o *rootOptions) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(o.configPath, o.envFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// commandMetrics метрики для разовых команд: отдельный реестр, эндпоинт не поднимается
func commandMetrics(cfg *config.Config) *metrics.Metrics {
	return metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
}

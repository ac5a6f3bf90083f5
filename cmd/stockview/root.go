package main

import (
	"fmt"

	"github.com/Meo-4971/StockView/config"
	"github.com/Meo-4971/StockView/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:          "stockview",
		Short:        "Stock ticker relay and viewer with RSI and MACD",
		SilenceUsage: true,
		RunE:         runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml or ./config/config.yaml)")
	rootCmd.AddCommand(serveCmd, fetchCmd)
}

// setup loads the config and builds the logger every command starts from.
func setup(stderrLog bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.Log.Stderr = cfg.Log.Stderr || stderrLog

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

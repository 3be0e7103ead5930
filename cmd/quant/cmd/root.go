package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/rustyeddy/quant/config"
	"github.com/rustyeddy/quant/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quant",
	Short: "Technical indicators and trade-journal performance analytics",
	Long: `Quant computes technical indicators over OHLCV candles and performance
and risk statistics over a journal of closed trades.

It provides tools for:
  - Indicator tables (SMA, EMA, RSI, MACD, Bollinger, Stochastic, ATR, VWAP)
  - Fibonacci retracements and pivot levels
  - Sharpe, Sortino, Calmar, Ulcer, K-Ratio, tail ratio, VaR and CVaR
  - CSV and SQLite trade journals with a log of analysis runs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	logLevel   string
	logJSON    bool

	// cfg is the file config, or defaults, before command flags apply.
	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger.Init("quant", level, os.Stderr, logJSON)

	if configPath == "" {
		cfg = config.Default()
		return nil
	}
	cfg, err = config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Debug("config loaded", "path", configPath)
	return nil
}

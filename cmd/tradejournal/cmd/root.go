package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A personal trading journal with performance analytics",
	Long: `Tradejournal records your trades in a local journal and analyzes them.

It provides tools for:
  - Logging, importing and editing trades
  - Performance metrics, breakdowns and monthly P/L
  - Equity curve and drawdown
  - Risk rule violations (over-risking, excess loss, session, revenge trades)
  - Org-mode trade notes and performance reports
  - Risk-based position sizing`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile   string
	dbPath    string
	logLevel  string
	logFormat string

	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults apply when empty")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if logFormat != "" {
		c.Log.Format = logFormat
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	cfg = c

	setupLogger(cmd.ErrOrStderr(), cfg.Log)
	slog.Debug("config loaded", "file", cfgFile, "journal", cfg.Journal.Type, "db", cfg.Journal.DBPath)
	return nil
}

func setupLogger(w io.Writer, lc config.LogConfig) {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func openStore() (journal.Store, error) {
	st, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return st, nil
}

// loadAll opens the journal and reads every trade, oldest entry first.
func loadAll(ctx context.Context) ([]journal.Trade, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	trades, err := st.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

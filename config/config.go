package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
	"gopkg.in/yaml.v3"
)

// Config represents the complete journal configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// AccountConfig describes the trading account the journal belongs to
type AccountConfig struct {
	ID           string  `json:"id" yaml:"id"`
	Currency     string  `json:"currency" yaml:"currency"`
	StartBalance float64 `json:"start_balance" yaml:"start_balance"`
}

// RiskConfig contains the risk profile and violation rule settings.
// Percentages are whole numbers: 2 means 2%.
type RiskConfig struct {
	MaxRiskPerTrade float64         `json:"max_risk_per_trade" yaml:"max_risk_per_trade"`
	MaxDailyLoss    float64         `json:"max_daily_loss" yaml:"max_daily_loss"`
	FallbackMaxRisk float64         `json:"fallback_max_risk,omitempty" yaml:"fallback_max_risk,omitempty"`
	SlippageFactor  float64         `json:"slippage_factor,omitempty" yaml:"slippage_factor,omitempty"`
	RevengeWindow   string          `json:"revenge_window,omitempty" yaml:"revenge_window,omitempty"` // e.g. "30m"
	Sessions        []SessionWindow `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

// SessionWindow is a session's UTC trading hours, end exclusive
type SessionWindow struct {
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// JournalConfig selects the trade store
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls log level and format
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug | info | warn | error
	Format string `json:"format" yaml:"format"` // text | json
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path (or the defaults when path is empty), then a .env
// file if present, and applies environment overrides before validating.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = parseFile(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TRADEJOURNAL_DB"); v != "" {
		cfg.Journal.DBPath = v
	}
	if v := os.Getenv("TRADEJOURNAL_START_BALANCE"); v != "" {
		bal, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TRADEJOURNAL_START_BALANCE: %w", err)
		}
		cfg.Account.StartBalance = bal
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Journal.Type == "" {
		cfg.Journal.Type = "sqlite"
	}
	if cfg.Journal.Type == "sqlite" && cfg.Journal.DBPath == "" {
		cfg.Journal.DBPath = "./tradejournal.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.StartBalance <= 0 {
		return fmt.Errorf("account.start_balance must be positive")
	}
	if c.Risk.MaxRiskPerTrade < 0 || c.Risk.MaxRiskPerTrade > 100 {
		return fmt.Errorf("risk.max_risk_per_trade must be between 0 and 100")
	}
	if c.Risk.MaxDailyLoss < 0 || c.Risk.MaxDailyLoss > 100 {
		return fmt.Errorf("risk.max_daily_loss must be between 0 and 100")
	}
	if c.Risk.FallbackMaxRisk < 0 {
		return fmt.Errorf("risk.fallback_max_risk must not be negative")
	}
	if c.Risk.SlippageFactor < 0 {
		return fmt.Errorf("risk.slippage_factor must not be negative")
	}
	if _, err := c.revengeWindow(); err != nil {
		return fmt.Errorf("risk.revenge_window: %w", err)
	}
	for _, s := range c.Risk.Sessions {
		if sess := journal.Session(strings.ToUpper(s.Name)); !sess.Valid() {
			return fmt.Errorf("unknown session: %s", s.Name)
		}
		if s.Start < 0 || s.Start > 23 || s.End < 0 || s.End > 24 {
			return fmt.Errorf("session %s hours must be within 0-24", s.Name)
		}
	}
	switch c.Journal.Type {
	case "memory":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'sqlite' or 'memory'")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

func (c *Config) revengeWindow() (time.Duration, error) {
	if c.Risk.RevengeWindow == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Risk.RevengeWindow)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return d, nil
}

// Profile returns the risk profile for the account, or nil when no
// per-trade limit is configured so the fallback limit applies.
func (c *Config) Profile() *risk.Profile {
	if c.Account.StartBalance <= 0 || c.Risk.MaxRiskPerTrade <= 0 {
		return nil
	}
	return &risk.Profile{
		StartBalance:    c.Account.StartBalance,
		Currency:        c.Account.Currency,
		MaxRiskPerTrade: c.Risk.MaxRiskPerTrade,
		MaxDailyLoss:    c.Risk.MaxDailyLoss,
	}
}

// Rules returns the violation rules. Unset values keep the risk
// package defaults.
func (c *Config) Rules() risk.Rules {
	r := risk.Rules{
		FallbackMaxRisk: c.Risk.FallbackMaxRisk,
		SlippageFactor:  c.Risk.SlippageFactor,
	}
	r.RevengeWindow, _ = c.revengeWindow()

	if len(c.Risk.Sessions) > 0 {
		r.Sessions = make(map[journal.Session]risk.Window, len(c.Risk.Sessions))
		for _, s := range c.Risk.Sessions {
			r.Sessions[journal.Session(strings.ToUpper(s.Name))] = risk.Window{Start: s.Start, End: s.End}
		}
	}
	return r
}

// OpenStore opens the configured trade store
func (c *Config) OpenStore() (journal.Store, error) {
	if c.Journal.Type == "memory" {
		return journal.NewMemory(), nil
	}
	db, err := journal.NewSQLite(c.Journal.DBPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:           "PERSONAL",
			Currency:     "USD",
			StartBalance: 10000,
		},
		Risk: RiskConfig{
			MaxRiskPerTrade: 1,
			MaxDailyLoss:    3,
			FallbackMaxRisk: risk.DefaultFallbackMaxRisk,
			SlippageFactor:  risk.DefaultSlippageFactor,
			RevengeWindow:   risk.DefaultRevengeWindow.String(),
			Sessions: []SessionWindow{
				{Name: string(journal.SessionLondon), Start: 7, End: 17},
				{Name: string(journal.SessionNY), Start: 12, End: 22},
				{Name: string(journal.SessionAsia), Start: 22, End: 9},
			},
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradejournal.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

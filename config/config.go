package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TradeAdvisor/whale-radar-main/logger"
)

// Config is the complete runtime configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Trading  TradingConfig  `json:"trading" yaml:"trading"`
	Feed     FeedConfig     `json:"feed" yaml:"feed"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`
	Log      logger.Config  `json:"log" yaml:"log"`
}

// AccountConfig seeds a fresh account when no snapshot exists yet.
type AccountConfig struct {
	Currency       string  `json:"currency" yaml:"currency"`
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
}

// TradingConfig holds the boundary limits enforced on manual open requests.
type TradingConfig struct {
	MinNotional   float64 `json:"min_notional" yaml:"min_notional"`
	MaxFeePct     float64 `json:"max_fee_pct" yaml:"max_fee_pct"`
	DefaultFeePct float64 `json:"default_fee_pct" yaml:"default_fee_pct"`
}

// FeedConfig configures the websocket price feed. An empty URL disables it
// (prices then arrive only via replay or tests).
type FeedConfig struct {
	URL   string   `json:"url,omitempty" yaml:"url,omitempty"`
	Pairs []string `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// JournalConfig selects where realized trades and equity samples go.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// SnapshotConfig controls account persistence. MigrateLegacy opts in to
// upgrading snapshots that predate per-position fee_pct/notional; without
// it such a file is a fatal startup error.
type SnapshotConfig struct {
	Path          string `json:"path" yaml:"path"`
	MigrateLegacy bool   `json:"migrate_legacy,omitempty" yaml:"migrate_legacy,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the config, YAML or JSON depending on extension.
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

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	if c.Trading.MinNotional <= 0 {
		return fmt.Errorf("trading.min_notional must be positive")
	}
	if c.Trading.MaxFeePct < 0 || c.Trading.MaxFeePct > 5 {
		return fmt.Errorf("trading.max_fee_pct must be within [0, 5]")
	}
	if c.Trading.DefaultFeePct < 0 || c.Trading.DefaultFeePct > c.Trading.MaxFeePct {
		return fmt.Errorf("trading.default_fee_pct must be within [0, max_fee_pct]")
	}
	if c.Feed.URL != "" && len(c.Feed.Pairs) == 0 {
		return fmt.Errorf("feed.pairs required when feed.url is set")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:       "EUR",
			InitialBalance: 10000,
		},
		Trading: TradingConfig{
			MinNotional:   10,
			MaxFeePct:     5,
			DefaultFeePct: 0.1,
		},
		Feed: FeedConfig{
			URL:   "wss://ws.kraken.com",
			Pairs: []string{"XBT/EUR", "ETH/EUR"},
		},
		Server: ServerConfig{
			Addr: ":8090",
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
		},
		Snapshot: SnapshotConfig{
			Path: "./manual_trades.json",
		},
		Log: logger.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

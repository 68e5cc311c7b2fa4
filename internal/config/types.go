package config

import "fmt"

// Config is the top-level configuration carrier.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	CoinSwitch CoinSwitchConfig `mapstructure:"coinswitch"`
	Audit      AuditConfig      `mapstructure:"audit"`
}

type AppConfig struct {
	Env                   string `mapstructure:"env"`
	LogLevel              string `mapstructure:"log_level"`
	HTTPAddr              string `mapstructure:"http_addr"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

// CoinSwitchConfig describes how to reach the upstream API.
type CoinSwitchConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"`
	MaxTradePages      int    `mapstructure:"max_trade_pages"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

const (
	defaultAppEnv         = "dev"
	defaultAppLogLevel    = "info"
	defaultAppHTTPAddr    = ":8085"
	defaultRequestTimeout = 60
	defaultBaseURL        = "https://coinswitch.co"
	defaultAPITimeout     = 15
	defaultMaxTradePages  = 10000
	defaultAuditDBPath    = "data/audit.db"
)

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = defaultAppEnv
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = defaultAppLogLevel
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = defaultAppHTTPAddr
	}
	if c.App.RequestTimeoutSeconds <= 0 {
		c.App.RequestTimeoutSeconds = defaultRequestTimeout
	}
	if c.CoinSwitch.BaseURL == "" {
		c.CoinSwitch.BaseURL = defaultBaseURL
	}
	if c.CoinSwitch.TimeoutSeconds <= 0 {
		c.CoinSwitch.TimeoutSeconds = defaultAPITimeout
	}
	if c.CoinSwitch.MaxTradePages <= 0 {
		c.CoinSwitch.MaxTradePages = defaultMaxTradePages
	}
	if c.Audit.DBPath == "" {
		c.Audit.DBPath = defaultAuditDBPath
	}
}

func validate(c *Config) error {
	if c.CoinSwitch.TimeoutSeconds <= 0 {
		return fmt.Errorf("coinswitch.timeout_seconds must be positive")
	}
	if c.CoinSwitch.MaxTradePages <= 0 {
		return fmt.Errorf("coinswitch.max_trade_pages must be positive")
	}
	if c.App.RequestTimeoutSeconds < c.CoinSwitch.TimeoutSeconds {
		return fmt.Errorf("app.request_timeout_seconds must cover a full upstream request")
	}
	return nil
}

package coinswitch

import (
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://coinswitch.co"
	defaultHTTPTimeout   = 15 * time.Second
	defaultMaxTradePages = 10000
)

type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration

	// MaxTradePages bounds closed-orders pagination against a remote end
	// that never returns an empty page.
	MaxTradePages int

	InsecureSkipVerify bool
}

func (c *Config) withDefaults() Config {
	out := *c
	out.BaseURL = strings.TrimSpace(out.BaseURL)
	if out.BaseURL == "" {
		out.BaseURL = defaultBaseURL
	}
	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = defaultHTTPTimeout
	}
	if out.MaxTradePages <= 0 {
		out.MaxTradePages = defaultMaxTradePages
	}
	return out
}

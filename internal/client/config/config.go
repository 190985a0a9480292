package config

import "time"

// Config holds runtime settings for the chat client.
//
// Fields:
//   - ServerURL: base URL of the chat API.
//   - PollInterval: how often the chat view refreshes the message feed.
//   - DatabasePath: SQLite file holding the persisted session.
//   - LogFile: diagnostics go here so they do not interleave with the prompt.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL    string
	PollInterval time.Duration
	DatabasePath string
	LogFile      string
	LogLevel     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.PollInterval = 3 * time.Second
	c.DatabasePath = "corpchat.db"
	c.LogFile = "corpchat.log"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

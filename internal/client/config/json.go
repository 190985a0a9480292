package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/corpchat/internal/flagx"
	"github.com/dmitrijs2005/corpchat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// set values are copied into the runtime Config.
type JsonConfig struct {
	ServerURL    string         `json:"server_url"`
	PollInterval timex.Duration `json:"poll_interval"`
	DatabasePath string         `json:"database_path"`
	LogFile      string         `json:"log_file"`
	LogLevel     string         `json:"log_level"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// It does nothing when no file is given and panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

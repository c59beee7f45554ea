package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clouddrive/internal/flagx"
	"github.com/dmitrijs2005/clouddrive/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the close delay either as
// a string like "2s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL string          `json:"server_base_url"`
	WebOrigin     string          `json:"web_origin"`
	DatabasePath  string          `json:"database_path"`
	DownloadDir   string          `json:"download_dir"`
	CloseDelay    *timex.Duration `json:"close_delay"`
	LogLevel      string          `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config in args. Fields absent from the file keep their current value.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.ServerBaseURL, jc.ServerBaseURL)
	set(&cfg.WebOrigin, jc.WebOrigin)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.DownloadDir, jc.DownloadDir)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.CloseDelay != nil {
		cfg.CloseDelay = jc.CloseDelay.Duration
	}
	return nil
}

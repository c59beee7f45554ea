package config

import "time"

// Config holds runtime settings for the CloudDrive CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API, including the /api prefix.
//   - WebOrigin: origin share links are built on when the backend returns
//     only a token.
//   - DatabasePath: sqlite file holding the persisted session.
//   - DownloadDir: directory downloads are written to.
//   - CloseDelay: how long a successful user share stays on screen.
//   - LogLevel: debug, info, warn or error.
//   - ShareToken: share token or link to open instead of the dashboard.
type Config struct {
	ServerBaseURL string
	WebOrigin     string
	DatabasePath  string
	DownloadDir   string
	CloseDelay    time.Duration
	LogLevel      string
	ShareToken    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.WebOrigin = "http://localhost:5173"
	c.DatabasePath = "clouddrive.db"
	c.DownloadDir = "download"
	c.CloseDelay = 2 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags in args. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

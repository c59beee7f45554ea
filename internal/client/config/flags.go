package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/clouddrive/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     backend API base URL
//	-o string     web origin for share links
//	-d string     sqlite database path
//	-dl string    download directory
//	-l string     log level
//	-open string  share token or link to open
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-o", "-d", "-dl", "-l", "-open"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend API base URL")
	fs.StringVar(&cfg.WebOrigin, "o", cfg.WebOrigin, "web origin used to build share links")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.DownloadDir, "dl", cfg.DownloadDir, "directory to save downloads in")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ShareToken, "open", cfg.ShareToken, "share token or link to open")

	return fs.Parse(args)
}

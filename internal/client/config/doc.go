// Package config loads runtime configuration for the CloudDrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend API base URL
//	-o string     web origin for share links
//	-d string     sqlite database path
//	-dl string    download directory
//	-l string     log level
//	-open string  share token or link to open on start
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the close delay, so it can be
// either a string like "2s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:5000/api",
//	  "web_origin": "http://localhost:5173",
//	  "database_path": "clouddrive.db",
//	  "download_dir": "download",
//	  "close_delay": "2s",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

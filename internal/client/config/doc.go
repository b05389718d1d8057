// Package config loads runtime configuration for the wallabag CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   wallabag server URL
//	-t string   API access token
//	-p int      entries per listing page
//	-w int      listing pages fetched concurrently
//	-r float    requests per second (0 disables pacing)
//	-T int      request timeout (seconds)
//	-x string   proxy URL (http, https, socks5)
//	-d string   cache DSN: SQLite file path or postgres:// URL
//	-l string   log level: debug, info, warn, error
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds. Keys left out keep their previous value:
//
//	{
//	  "server_url": "https://wallabag.example.org",
//	  "access_token": "...",
//	  "page_size": 50,
//	  "page_workers": 4,
//	  "requests_per_second": 5,
//	  "request_timeout": "30s",
//	  "proxy_url": "socks5://127.0.0.1:1080",
//	  "cache_dsn": "~/.cache/wallabag/entries.db",
//	  "log_level": "debug",
//	  "online_check_interval": "10s"
//	}
package config

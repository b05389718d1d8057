package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/wallabag/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-p", "-w", "-r", "-T", "-x", "-d", "-l", "-i"}

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered down to the flags handled here first; it panics on bad values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "wallabag server URL")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "API access token")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "entries per listing page")
	fs.IntVar(&cfg.PageWorkers, "w", cfg.PageWorkers, "listing pages fetched concurrently")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "requests per second (0 disables pacing)")
	timeout := fs.Int("T", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.ProxyURL, "x", cfg.ProxyURL, "proxy URL")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "cache DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Whole seconds only replace durations that were given on the command line.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "T":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}

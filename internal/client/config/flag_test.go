package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected    func() *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "https://w.example", "-t", "tok", "-p", "50", "-w", "2", "-r", "2.5",
				"-T", "5", "-x", "socks5://127.0.0.1:1080", "-d", "postgres://u@h/db", "-l", "debug", "-i", "20"},
			expected: func() *Config {
				return &Config{
					ServerURL: "https://w.example", AccessToken: "tok", PageSize: 50, PageWorkers: 2,
					RequestsPerSecond: 2.5, RequestTimeout: 5 * time.Second, ProxyURL: "socks5://127.0.0.1:1080",
					CacheDSN: "postgres://u@h/db", LogLevel: "debug", OnlineCheckInterval: 20 * time.Second,
				}
			},
		},
		{
			name:     "no flags keep defaults",
			args:     []string{"cmd"},
			expected: defaults,
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-z", "1", "-p", "7"},
			expected: func() *Config {
				c := defaults()
				c.PageSize = 7
				return c
			},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect page size", args: []string{"cmd", "-p", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected(), config))
		})
	}
}

func TestParseFlags_KeepsSubSecondDurationsUnlessGiven(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-p", "5"}

	cfg := &Config{RequestTimeout: 1500 * time.Millisecond, OnlineCheckInterval: 250 * time.Millisecond}
	parseFlags(cfg)

	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.OnlineCheckInterval)
}

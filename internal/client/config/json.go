package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/wallabag/internal/flagx"
	"github.com/dmitrijs2005/wallabag/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Every field
// is a pointer so that keys missing from the file leave Config untouched.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	AccessToken         *string         `json:"access_token"`
	PageSize            *int            `json:"page_size"`
	PageWorkers         *int            `json:"page_workers"`
	RequestsPerSecond   *float64        `json:"requests_per_second"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	ProxyURL            *string         `json:"proxy_url"`
	CacheDSN            *string         `json:"cache_dsn"`
	LogLevel            *string         `json:"log_level"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the JSON file named by -c/-config, if any.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	set(&cfg.ServerURL, jc.ServerURL)
	set(&cfg.AccessToken, jc.AccessToken)
	set(&cfg.PageSize, jc.PageSize)
	set(&cfg.PageWorkers, jc.PageWorkers)
	set(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	set(&cfg.ProxyURL, jc.ProxyURL)
	set(&cfg.CacheDSN, jc.CacheDSN)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

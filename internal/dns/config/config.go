// Package config loads the proxy's runtime configuration from environment
// variables using koanf, applying defaults and validator-tag based checks.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// ListenAddr is the host:port the UDP listener binds to.
	ListenAddr string `koanf:"listen_addr" validate:"required,ip_port"`

	// UpstreamAddr is the host:port of the resolver queries are forwarded to.
	UpstreamAddr string `koanf:"upstream_addr" validate:"required,ip_port"`

	// UpstreamTimeoutMS bounds how long a forwarded query waits for a reply.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms" validate:"required,gte=1"`

	// BlocklistPaths is one or more suffix-list or hosts-format files,
	// loaded in order before serving starts.
	BlocklistPaths []string `koanf:"blocklist_paths" validate:"required,min=1"`

	// BlocklistCacheSize is the decision cache capacity; 0 disables caching.
	BlocklistCacheSize int `koanf:"blocklist_cache_size" validate:"gte=0"`

	// BlocklistBloomFPRate is the target false-positive rate for the
	// Bloom pre-filter placed in front of the authoritative store.
	BlocklistBloomFPRate float64 `koanf:"blocklist_bloom_fp_rate" validate:"gt=0,lt=1"`

	// BlocklistStorePath, if set, backs the blocklist with a persistent
	// bbolt store at this path instead of the default in-memory store.
	BlocklistStorePath string `koanf:"blocklist_store_path"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// DefaultAppConfig defines the default configuration for the DNS proxy.
var DefaultAppConfig = AppConfig{
	ListenAddr:           "0.0.0.0:53",
	UpstreamAddr:         "1.1.1.1:53",
	UpstreamTimeoutMS:    5000,
	BlocklistPaths:       []string{"/etc/ads-blocker/blocklist.txt"},
	BlocklistCacheSize:   10000,
	BlocklistBloomFPRate: 0.01,
	BlocklistStorePath:   "",
	Env:                  "prod",
	LogLevel:             "info",
}

// validIPPort validates that a field is a well-formed "host:port" address.
func validIPPort(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	if net.ParseIP(ip) == nil {
		return false
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0 && portNum < 65536
}

// envLoader loads environment variables prefixed "ADSBLOCK_", lower-casing
// keys and splitting space/comma-delimited values into slices (used by
// blocklist_paths).
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "ADSBLOCK_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "ADSBLOCK_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
}

var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
}

// Load parses environment variables and returns a validated AppConfig.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

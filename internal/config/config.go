// Package config loads the controller's runtime configuration: listen
// address, health address, and log level. Reconnect interval and door
// delay are also loaded and validated here, but the car binary does not
// read this configuration; it takes its own -reconnect-every flag and
// delay_ms argument. Precedence is ENV > File > Defaults, matching the
// rest of the ambient stack's load order.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the strict YAML shape accepted on disk; unknown fields
// are rejected so a typo in an operator's config doesn't silently no-op.
type FileConfig struct {
	ListenAddr      string `yaml:"listenAddr,omitempty"`
	HealthAddr      string `yaml:"healthAddr,omitempty"`
	LogLevel        string `yaml:"logLevel,omitempty"`
	ReconnectEvery  string `yaml:"reconnectEvery,omitempty"`
	DoorDelay       string `yaml:"doorDelay,omitempty"`
}

// Config is the resolved, validated configuration the controller binary
// runs with.
type Config struct {
	ListenAddr     string
	HealthAddr     string
	LogLevel       string
	ReconnectEvery time.Duration
	DoorDelay      time.Duration
}

const (
	// defaultListenAddr matches the original simulator's hardcoded port 3000.
	defaultListenAddr     = ":3000"
	defaultHealthAddr     = ":7771"
	defaultLogLevel       = "info"
	defaultReconnectEvery = 2 * time.Second
	defaultDoorDelay      = 2 * time.Second
)

// DefaultControllerAddr is the address a car dials when none is given on
// its command line.
const DefaultControllerAddr = "127.0.0.1:3000"

// Env var names, highest precedence.
const (
	EnvListenAddr     = "LIFTCTL_LISTEN_ADDR"
	EnvHealthAddr     = "LIFTCTL_HEALTH_ADDR"
	EnvLogLevel       = "LIFTCTL_LOG_LEVEL"
	EnvReconnectEvery = "LIFTCTL_RECONNECT_EVERY"
	EnvDoorDelay      = "LIFTCTL_DOOR_DELAY"
)

// Load resolves configuration with precedence ENV > File > Defaults. path
// may be empty, in which case only defaults and environment apply.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		HealthAddr:     defaultHealthAddr,
		LogLevel:       defaultLogLevel,
		ReconnectEvery: defaultReconnectEvery,
		DoorDelay:      defaultDoorDelay,
	}

	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFile(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge config file: %w", err)
		}
	}

	if err := mergeEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// loadFile reads and strictly decodes path, rejecting unknown fields and
// trailing documents.
func loadFile(path string) (FileConfig, error) {
	var fileCfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fileCfg, fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && err != io.EOF {
		return fileCfg, fmt.Errorf("strict parse: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fileCfg, fmt.Errorf("config file contains trailing content")
	}
	return fileCfg, nil
}

func mergeFile(dst *Config, src FileConfig) error {
	if src.ListenAddr != "" {
		dst.ListenAddr = src.ListenAddr
	}
	if src.HealthAddr != "" {
		dst.HealthAddr = src.HealthAddr
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.ReconnectEvery != "" {
		d, err := time.ParseDuration(src.ReconnectEvery)
		if err != nil {
			return fmt.Errorf("reconnectEvery: %w", err)
		}
		dst.ReconnectEvery = d
	}
	if src.DoorDelay != "" {
		d, err := time.ParseDuration(src.DoorDelay)
		if err != nil {
			return fmt.Errorf("doorDelay: %w", err)
		}
		dst.DoorDelay = d
	}
	return nil
}

func mergeEnv(dst *Config) error {
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		dst.ListenAddr = v
	}
	if v, ok := os.LookupEnv(EnvHealthAddr); ok {
		dst.HealthAddr = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		dst.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvReconnectEvery); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReconnectEvery, err)
		}
		dst.ReconnectEvery = d
	}
	if v, ok := os.LookupEnv(EnvDoorDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDoorDelay, err)
		}
		dst.DoorDelay = d
	}
	return nil
}

var validLogLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// Validate rejects a configuration that would otherwise fail later in a
// more confusing way (an unparseable log level, a non-positive timer).
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("listenAddr must not be empty")
	}
	if _, ok := validLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.ReconnectEvery <= 0 {
		return fmt.Errorf("reconnectEvery must be positive, got %s", cfg.ReconnectEvery)
	}
	if cfg.DoorDelay <= 0 {
		return fmt.Errorf("doorDelay must be positive, got %s", cfg.DoorDelay)
	}
	return nil
}

// ParseDoorDelayArg accepts either a bare integer (milliseconds, matching
// the car binary's positional delay_ms argument) or a Go duration string.
// The car binary uses it for that argument; the file and environment paths
// above accept Go duration strings only.
func ParseDoorDelayArg(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

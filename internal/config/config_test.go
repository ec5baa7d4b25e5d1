package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, defaultListenAddr, cfg.ListenAddr)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Equal(t, defaultReconnectEvery, cfg.ReconnectEvery)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "liftctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listenAddr: \":9000\"\nlogLevel: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.ListenAddr)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FileRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "liftctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bogusField: true\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "liftctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listenAddr: \":9000\"\n"), 0o600))

	t.Setenv(EnvListenAddr, ":9500")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9500", cfg.ListenAddr)
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := Config{ListenAddr: ":1", LogLevel: "verbose", ReconnectEvery: time.Second, DoorDelay: time.Second}
	require.Error(t, Validate(cfg))
}

func TestValidate_RejectsNonPositiveDurations(t *testing.T) {
	cfg := Config{ListenAddr: ":1", LogLevel: "info", ReconnectEvery: 0, DoorDelay: time.Second}
	require.Error(t, Validate(cfg))
}

func TestParseDoorDelayArg_AcceptsPlainMilliseconds(t *testing.T) {
	d, err := ParseDoorDelayArg("1500")
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, d)
}

func TestParseDoorDelayArg_AcceptsDurationString(t *testing.T) {
	d, err := ParseDoorDelayArg("2s")
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, d)
}

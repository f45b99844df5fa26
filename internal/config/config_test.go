package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDeploymentConfigMissingFileIsNotError(t *testing.T) {
	cfg, err := LoadDeploymentConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, DeploymentConfig{}, cfg)
}

func TestLoadDeploymentConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinator.yaml")
	yaml := "port: 6000\nvehicleUpdateBatchSize: 64\nminLogLevel: DEBUG\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadDeploymentConfig(path)
	require.NoError(t, err)
	require.Equal(t, int32(6000), cfg.Port)
	require.Equal(t, int32(64), cfg.VehicleUpdateBatchSz)
	require.Equal(t, "DEBUG", cfg.MinLogLevel)
	require.Equal(t, int32(0), cfg.EcloudPushAPIPort)
}

func TestApplyDefaultsOnlyOverridesNonZeroFields(t *testing.T) {
	dep := DeploymentConfig{Port: 7000}
	got := dep.ApplyDefaults(Default())

	require.Equal(t, int32(7000), got.Port)
	require.Equal(t, Default().EcloudPushAPIPort, got.EcloudPushAPIPort)
	require.Equal(t, Default().MinLogLevel, got.MinLogLevel)
}

func TestParseAppliesFlagOverridesOverYAMLDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinator.yaml")
	yaml := "port: 6000\nminLogLevel: DEBUG\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Parse([]string{"--config", path, "--port", "7000"})
	require.NoError(t, err)

	// --port on the command line wins over the file's port.
	require.Equal(t, int32(7000), cfg.Port)
	// minLogLevel came only from the file, so it still applies.
	require.Equal(t, "DEBUG", cfg.MinLogLevel)
	// Anything neither the file nor the flags set keeps its hardcoded default.
	require.Equal(t, Default().EcloudPushBasePort, cfg.EcloudPushBasePort)
}

func TestParseWithoutConfigFlagUsesHardcodedDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// Package config parses the coordination server's CLI surface (§6).
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Config is the fully-parsed CLI surface of the server process.
type Config struct {
	Port                 int32
	EcloudPushAPIPort    int32
	EcloudPushBasePort   int32
	VehicleUpdateBatchSz int32
	MinLogLevel          string
}

// Default matches the defaults documented in §6.
func Default() Config {
	return Config{
		Port:                 50051,
		EcloudPushAPIPort:    50061,
		EcloudPushBasePort:   50101,
		VehicleUpdateBatchSz: 32,
		MinLogLevel:          "INFO",
	}
}

// Parse builds a FlagSet over Default (optionally overridden by a
// --config deployment file, §10) and parses args (typically
// os.Args[1:]). It returns pflag.ErrHelp unchanged when -h/--help is
// requested so callers can print usage and exit 0.
func Parse(args []string) (Config, error) {
	var configPath string
	preScan := pflag.NewFlagSet("ticksync-server-prescan", pflag.ContinueOnError)
	preScan.ParseErrorsWhitelist.UnknownFlags = true
	preScan.StringVar(&configPath, "config", "", "path to an optional YAML deployment config")
	preScan.BoolP("help", "h", false, "")
	_ = preScan.Parse(args)

	cfg := Default()
	if configPath != "" {
		dep, err := LoadDeploymentConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = dep.ApplyDefaults(cfg)
	}

	fs := pflag.NewFlagSet("ticksync-server", pflag.ContinueOnError)
	fs.String("config", configPath, "path to an optional YAML deployment config")
	fs.Int32Var(&cfg.Port, "port", cfg.Port, "listening port for the vehicle/API-host RPC surface")
	fs.Int32Var(&cfg.EcloudPushAPIPort, "ecloud_push_api_port", cfg.EcloudPushAPIPort, "port the simulation API host's Push service listens on")
	fs.Int32Var(&cfg.EcloudPushBasePort, "ecloud_push_base_port", cfg.EcloudPushBasePort, "reserved base port for vehicle Push services")
	fs.Int32Var(&cfg.VehicleUpdateBatchSz, "vehicle_update_batch_size", cfg.VehicleUpdateBatchSz, "batch size for Server_GetVehicleUpdates drain calls")
	fs.StringVar(&cfg.MinLogLevel, "minloglevel", cfg.MinLogLevel, "minimum log level: DEBUG, INFO, WARN, ERROR")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseOrExit is the convenience entrypoint main() uses: on -h/--help it
// prints usage and exits 0; on a parse error it prints the error and
// exits with a non-zero code, matching §6's "non-zero on bind failure"
// posture extended to flag errors.
func ParseOrExit(args []string) Config {
	cfg, err := Parse(args)
	if err == nil {
		return cfg
	}
	if err == pflag.ErrHelp {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "ticksync-server: %v\n", err)
	os.Exit(2)
	return Config{}
}

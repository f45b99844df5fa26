package config

// DeploymentConfig is the coordinator's optional day-two config file
// (§10 AMBIENT STACK): listen addresses and defaults an operator would
// otherwise have to repeat on every CLI invocation. CLI flags always take
// precedence; this file only supplies fallback defaults.
type DeploymentConfig struct {
	Port                 int32  `yaml:"port"`
	EcloudPushAPIPort    int32  `yaml:"ecloudPushApiPort"`
	EcloudPushBasePort   int32  `yaml:"ecloudPushBasePort"`
	VehicleUpdateBatchSz int32  `yaml:"vehicleUpdateBatchSize"`
	MinLogLevel          string `yaml:"minLogLevel"`
	MetricsAddress       string `yaml:"metricsAddress"`
}

// ApplyDefaults overlays d's non-zero fields onto cfg, used to seed
// Config before flag parsing so CLI flags can still override the file.
// MetricsAddress has no Config counterpart and is not applied: the
// metrics server listens on :9090 regardless of the file.
func (d DeploymentConfig) ApplyDefaults(cfg Config) Config {
	if d.Port != 0 {
		cfg.Port = d.Port
	}
	if d.EcloudPushAPIPort != 0 {
		cfg.EcloudPushAPIPort = d.EcloudPushAPIPort
	}
	if d.EcloudPushBasePort != 0 {
		cfg.EcloudPushBasePort = d.EcloudPushBasePort
	}
	if d.VehicleUpdateBatchSz != 0 {
		cfg.VehicleUpdateBatchSz = d.VehicleUpdateBatchSz
	}
	if d.MinLogLevel != "" {
		cfg.MinLogLevel = d.MinLogLevel
	}
	return cfg
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDeploymentConfig reads an optional YAML deployment descriptor. A
// missing file is not an error: the coordinator runs fine off flag
// defaults alone.
func LoadDeploymentConfig(path string) (DeploymentConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DeploymentConfig{}, nil
	}
	if err != nil {
		return DeploymentConfig{}, err
	}
	var cfg DeploymentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DeploymentConfig{}, err
	}
	return cfg, nil
}

package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is the optional YAML config file read by axmon. All fields are
// optional; command-line flags take precedence when set. Grounded in
// the teacher's tocalls.yaml loader (src/deviceid.go).
type config struct {
	TncAddress  string `yaml:"tnc_address"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// loadConfig reads path if it exists. A missing file is not an error —
// callers fall back to flag defaults.
func loadConfig(path string) (config, error) {
	var cfg config

	var data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, err
	}

	return cfg, nil
}

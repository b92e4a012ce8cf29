package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is axbeacon's optional YAML config file, grounded in the
// teacher's tocalls.yaml loader (src/deviceid.go).
type config struct {
	TncAddress      string `yaml:"tnc_address"`
	Callsign        string `yaml:"callsign"`
	Dest            string `yaml:"dest"`
	Comment         string `yaml:"comment"`
	IntervalSeconds int    `yaml:"interval_seconds"`
}

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

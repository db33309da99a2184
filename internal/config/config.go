// Package config loads optional run defaults from a YAML file. Flags on
// the command line always win over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Defaults struct {
		Country           string   `yaml:"country"`
		ResultsWanted     int      `yaml:"results_wanted"`
		DescriptionFormat string   `yaml:"description_format"`
		Verbose           int      `yaml:"verbose"`
		Proxies           []string `yaml:"proxies"`
	} `yaml:"defaults"`

	Rate struct {
		PerHostRPS int `yaml:"per_host_rps"`
		Burst      int `yaml:"burst"`
	} `yaml:"rate"`

	Salary struct {
		LowerAnnual      float64 `yaml:"lower_annual"`
		UpperAnnual      float64 `yaml:"upper_annual"`
		HourlyThreshold  float64 `yaml:"hourly_threshold"`
		MonthlyThreshold float64 `yaml:"monthly_threshold"`
	} `yaml:"salary"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// Default returns the built-in values used when no file is given.
func Default() Config {
	var cfg Config
	cfg.Defaults.Country = "usa"
	cfg.Defaults.ResultsWanted = 15
	cfg.Defaults.DescriptionFormat = "markdown"
	cfg.Rate.PerHostRPS = 2
	cfg.Rate.Burst = 4
	cfg.Salary.LowerAnnual = 1000
	cfg.Salary.UpperAnnual = 700000
	cfg.Salary.HourlyThreshold = 350
	cfg.Salary.MonthlyThreshold = 30000
	cfg.Server.Port = 8080
	return cfg
}

// Load reads path over the defaults. A missing file is not an error when
// path is empty; an unreadable or malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

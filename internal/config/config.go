// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/iwvelando/stockwatch-advisor/internal/advisor"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for stockwatch-advisor.
type Configuration struct {
	NetWorth    float64       `mapstructure:"net_worth"`
	Houseguests []Houseguest  `mapstructure:"houseguests"`
	Evictions   float64       `mapstructure:"evictions"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Output      OutputConfig  `mapstructure:"output"`
}

// Houseguest describes one tradable stock: its current cost and the
// projected values per share.
type Houseguest struct {
	Name        string    `mapstructure:"name"`
	Cost        float64   `mapstructure:"cost"`
	Projections []float64 `mapstructure:"projections"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Assets converts the configured houseguests into solver assets, preserving
// input order. Semantic validation happens in the advisor, not here.
func (conf *Configuration) Assets() []advisor.Asset {
	assets := make([]advisor.Asset, len(conf.Houseguests))
	for i, hg := range conf.Houseguests {
		assets[i] = advisor.Asset{
			Name:        hg.Name,
			Cost:        hg.Cost,
			Projections: hg.Projections,
		}
	}
	return assets
}

// EvictionProbability returns the informational evictions-per-houseguest
// ratio printed alongside the advice. It is not part of the optimization.
func (conf *Configuration) EvictionProbability() float64 {
	if len(conf.Houseguests) == 0 {
		return 0
	}
	return conf.Evictions / float64(len(conf.Houseguests))
}

// ValidateConfiguration checks for conditions that are suspicious but not
// fatal and returns warnings for them. Fatal conditions are rejected by the
// advisor when solving.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Houseguests) == 0 {
		warnings = append(warnings, "no houseguests configured; there is nothing to allocate")
	}

	seen := make(map[string]bool)
	for _, hg := range conf.Houseguests {
		if seen[hg.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate houseguest name '%s'; entries are treated as independent stocks", hg.Name))
		}
		seen[hg.Name] = true
	}

	if conf.Evictions < 0 {
		warnings = append(warnings, fmt.Sprintf("evictions is negative (%v)", conf.Evictions))
	}
	if n := len(conf.Houseguests); n > 0 && conf.Evictions > float64(n) {
		warnings = append(warnings, fmt.Sprintf("evictions (%v) exceeds the number of houseguests (%d)", conf.Evictions, n))
	}

	return warnings
}

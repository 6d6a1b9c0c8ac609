// Package config decodes and hot-reloads the tuning parameters the CDCL
// engine and its ambient stack read at construction (spec.md §9
// supplement, C8): the teacher's flat struct generalized with a decode
// pipeline, since a long-lived solver service needs its restart/decay
// schedule adjustable without a process restart.
package config

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	yamlv2 "gopkg.in/yaml.v2"
)

// Config holds the engine tunables: variable/clause activity decay, the
// Luby restart unit, the base of the clause-reduction threshold (the
// engine's reduction schedule starts at a third of it), and output
// bookkeeping (the teacher's OutputPath/Models/Verbose fields, carried
// unchanged).
type Config struct {
	Logger *logrus.Logger `mapstructure:"-" json:"-"`

	VarDecay      float64 `mapstructure:"var_decay" json:"var_decay"`
	ClaDecay      float64 `mapstructure:"cla_decay" json:"cla_decay"`
	RestartUnit   int64   `mapstructure:"restart_unit" json:"restart_unit"`
	ReduceInitial int     `mapstructure:"reduce_initial" json:"reduce_initial"`
	Verbose       bool    `mapstructure:"verbose" json:"verbose"`
	OutputPath    string  `mapstructure:"output_path" json:"output_path"`
	Models        uint    `mapstructure:"models" json:"models"`
}

// New returns the defaults the engine is tuned against when no tuning
// file is supplied.
func New() *Config {
	return &Config{
		Logger:        logrus.StandardLogger(),
		VarDecay:      0.95,
		ClaDecay:      0.999,
		RestartUnit:   100,
		ReduceInitial: 2000,
	}
}

// Load reads a YAML tuning file into a fresh Config seeded with New's
// defaults. gopkg.in/yaml.v2 decodes the raw document into a generic map
// so a partial file never errors on missing keys; mapstructure then fills
// only the fields the document actually sets, leaving the rest at their
// default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := yamlv2.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cfg := New()
	if err := mapstructure.Decode(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg back to YAML through ghodss/yaml, which round-trips
// via encoding/json; each field's json tag repeats its mapstructure tag so
// Load reads the output back. Used by the CLI's config-dump path.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the ingestion knobs that vary per dataset. Zero values fall
// back to the Reichert et al. (2020) Fornax defaults.
type Config struct {
	// GalaxyFilter is the provenance code a fixed-width catalogue line must
	// carry to be kept.
	GalaxyFilter string `yaml:"galaxyFilter"`

	// TracerElement gates record inclusion: lines without a finite
	// log-abundance for it are dropped.
	TracerElement string `yaml:"tracerElement"`

	// MissingSentinel is the numeric placeholder for absent measurements in
	// free-form tables.
	MissingSentinel float64 `yaml:"missingSentinel"`
}

func Default() Config {
	return Config{
		GalaxyFilter:    "For",
		TracerElement:   "Eu",
		MissingSentinel: 30.0,
	}
}

// Load reads a YAML config file; fields left unset keep their defaults.
func Load(path string) (Config, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(blob, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.GalaxyFilter) == "" {
		return Config{}, fmt.Errorf("config %s: galaxyFilter must not be blank", path)
	}
	if strings.TrimSpace(cfg.TracerElement) == "" {
		return Config{}, fmt.Errorf("config %s: tracerElement must not be blank", path)
	}
	return cfg, nil
}

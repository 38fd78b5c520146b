// Package config handles configuration loading for the validation server.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geojson/internal/crs"
)

// DefaultMaxBodyBytes caps request bodies when the config does not.
const DefaultMaxBodyBytes = 1 << 20

// Config represents the root configuration file structure.
type Config struct {
	// DefaultCRS is attached to geometries that arrive without a crs member.
	DefaultCRS   *CRS  `yaml:"default_crs,omitempty"`
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
	Minify       bool  `yaml:"minify,omitempty"`
}

// CRS is a CRS definition in config form. Exactly one of Name or Href is set.
type CRS struct {
	Name string `yaml:"name,omitempty"`
	Href string `yaml:"href,omitempty"`
	Type string `yaml:"type,omitempty"`
}

// Build validates the definition and returns the CRS value.
func (c CRS) Build() (crs.CRS, error) {
	switch {
	case c.Name != "" && c.Href != "":
		return nil, errors.New("crs: set either name or href, not both")
	case c.Name != "":
		n, err := crs.NewNamed(c.Name)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		l, err := crs.NewLinked(c.Href, c.Type)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses configuration data and fills defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.DefaultCRS != nil {
		if _, err := cfg.DefaultCRS.Build(); err != nil {
			return nil, errors.Wrap(err, "invalid default_crs")
		}
	}

	return &cfg, nil
}

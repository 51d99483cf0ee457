// Package config holds the partitioner and build settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/threedslider/appleseed/bvh"
	"github.com/threedslider/appleseed/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid settings")

// Config holds all settings.
type Config struct {
	Partitioner PartitionerConfig `yaml:"partitioner"`
	Build       BuildConfig       `yaml:"build"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PartitionerConfig holds the SAH cost model.
type PartitionerConfig struct {
	MaxLeafSize           int     `yaml:"max_leaf_size"`
	InteriorTraversalCost float64 `yaml:"interior_traversal_cost"`
	IntersectionCost      float64 `yaml:"intersection_cost"`
}

// BuildConfig holds build driver settings.
type BuildConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Partitioner: PartitionerConfig{
			MaxLeafSize:           4,
			InteriorTraversalCost: 1,
			IntersectionCost:      1,
		},
		Build: BuildConfig{
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level: log.Notice.String(),
		},
	}
}

// Load the defaults and merge the YAML file at path over them. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config from %s: %w", path, err)
	}
	return cfg, nil
}

// Save the config as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate all settings.
func (c *Config) Validate() error {
	if err := c.Partitioner.BVH().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Build.Workers < 1 {
		return fmt.Errorf("%w: build workers must be at least 1; got %d", ErrInvalid, c.Build.Workers)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// BVH converts the settings into a float32 partitioner config.
func (p PartitionerConfig) BVH() bvh.Config[float32] {
	return bvh.Config[float32]{
		MaxLeafSize:           p.MaxLeafSize,
		InteriorTraversalCost: float32(p.InteriorTraversalCost),
		IntersectionCost:      float32(p.IntersectionCost),
	}
}

// Package config loads server configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Generation GenerationConfig `yaml:"generation"`
	Snapshots  SnapshotConfig   `yaml:"snapshots"`
	Events     EventConfig      `yaml:"events"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
}

type StorageConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

type GenerationConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Seed            *int64  `yaml:"seed"`
	DiffusionPasses int     `yaml:"diffusion_passes"`
	NoiseAmplitude  float64 `yaml:"noise_amplitude"`
	RiverCount      int     `yaml:"river_count"`
}

type SnapshotConfig struct {
	Dir string `yaml:"dir"`
}

type EventConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Defaults returns a configuration usable without any file
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			WriteTimeout: 10 * time.Second,
			ReadTimeout:  60 * time.Second,
		},
		Storage: StorageConfig{
			Type: StorageJSON,
			Path: "db.json",
			DSN:  "host=localhost user=beastride password=beastride dbname=beast_ride_saga sslmode=disable",
		},
		Generation: GenerationConfig{
			Width:           120,
			Height:          90,
			DiffusionPasses: 5,
			NoiseAmplitude:  2.5,
		},
		Snapshots: SnapshotConfig{Dir: "snapshots"},
		Events:    EventConfig{Enabled: true, Dir: "events"},
	}
}

// Load reads a YAML file on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the process environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("DB_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Storage.DSN = v
	}
	if v := getenv("DB_FILE"); v != "" {
		c.Storage.Path = v
	}
	if v := getenv("SNAPSHOT_DIR"); v != "" {
		c.Snapshots.Dir = v
	}
	if v := getenv("EVENT_LOG_DIR"); v != "" {
		c.Events.Dir = v
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Generation.Width <= 0 || c.Generation.Height <= 0 {
		return fmt.Errorf("generation size %dx%d must be positive", c.Generation.Width, c.Generation.Height)
	}
	switch c.Storage.Type {
	case StorageJSON, StorageSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage path is required")
		}
	case StoragePostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage dsn is required")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	return nil
}

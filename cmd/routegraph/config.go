package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-backed CLI configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// Backend is "sqlite" or "neo4j".
	Backend string       `yaml:"backend"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
	Neo4j   Neo4jConfig  `yaml:"neo4j"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// defaultConfig is what you get with no config file: a local SQLite
// database next to the working directory.
func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			SQLite:  SQLiteConfig{Path: "routegraph.db"},
			Neo4j:   Neo4jConfig{URI: "bolt://localhost:7687", Username: "neo4j"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// loadConfig reads the YAML file at path over the defaults. A missing
// file is only an error when the path was set explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		applyEnv(&cfg)

		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)

	return cfg, nil
}

// applyEnv lets deployment environments override the Neo4j connection
// settings without touching the config file. Credentials in
// particular belong in the environment, not on disk.
func applyEnv(cfg *Config) {
	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.Storage.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USERNAME"); v != "" {
		cfg.Storage.Neo4j.Username = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Storage.Neo4j.Password = v
	}
}

// newLogger builds the process logger writing to stderr, keeping
// stdout free for command output.
func newLogger(cfg LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return slog.New(handler), nil
}

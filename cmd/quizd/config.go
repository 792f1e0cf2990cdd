package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config describes the quizd YAML configuration.
type config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		Backend    string `yaml:"backend"`
	} `yaml:"server"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Banks struct {
		Paths []string `yaml:"paths"`
	} `yaml:"banks"`
}

// loadConfig reads and validates the configuration file.
func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8321"
	}
	if cfg.Server.Backend == "" {
		cfg.Server.Backend = "memory"
	}
	switch cfg.Server.Backend {
	case "memory", "duckdb":
	default:
		return cfg, fmt.Errorf("unsupported backend %q (expected memory or duckdb)", cfg.Server.Backend)
	}
	if cfg.Server.Backend == "duckdb" && cfg.Store.Path == "" {
		return cfg, fmt.Errorf("store.path is required for the duckdb backend")
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	OpenBrowser bool   `yaml:"open_browser"`
}

type StorageConfig struct {
	DataDir   string `yaml:"data_dir"`
	ImagesDir string `yaml:"images_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 5000,
		},
		Storage: StorageConfig{
			DataDir:   "data",
			ImagesDir: "data/images",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("LABNOTE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("LABNOTE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LABNOTE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LABNOTE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if openStr := os.Getenv("LABNOTE_OPEN_BROWSER"); openStr != "" {
		open, err := strconv.ParseBool(openStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LABNOTE_OPEN_BROWSER: %w", err)
		}
		cfg.Server.OpenBrowser = open
	}
	if dataDir := os.Getenv("LABNOTE_DATA_DIR"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if imagesDir := os.Getenv("LABNOTE_IMAGES_DIR"); imagesDir != "" {
		cfg.Storage.ImagesDir = imagesDir
	}
	if level := os.Getenv("LABNOTE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ServerConfig describes the managed SRT media server: how to launch
// it and where to reach its control API and ingest/playback endpoints.
type ServerConfig struct {
	Command    string   `toml:"command"`
	Args       []string `toml:"args"`
	APIAddr    string   `toml:"api_addr"`
	IngestPort int      `toml:"ingest_port"`
	PlayURL    string   `toml:"play_url"`
	Autostart  bool     `toml:"autostart"`
}

// Config represents the global ~/.strmctl/config.toml.
type Config struct {
	DefaultSession string       `toml:"default_session"`
	Server         ServerConfig `toml:"server"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Command:    "mediamtx",
			APIAddr:    "127.0.0.1:9997",
			IngestPort: 8890,
			Autostart:  true,
		},
	}
}

// Load reads config from the given path. Returns an error if the file
// is missing or malformed.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault reads config from path, falling back to Default when
// the file does not exist.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Package config defines the server's TOML configuration, loaded with
// BurntSushi/toml (spec §2 ambient configuration).
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable for a running CheckAI server.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Hub     HubConfig     `toml:"hub"`
}

// ServerConfig controls the transport listener.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
	LogLevel   string `toml:"log_level"`
}

// StorageConfig controls where and how games are persisted.
type StorageConfig struct {
	BaseDir string `toml:"base_dir"`
}

// HubConfig holds event fan-out settings. pkg/hub does not read it: its
// per-session mailbox size is a fixed constant in that package.
type HubConfig struct {
	MailboxSize int `toml:"mailbox_size"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:8080",
			LogLevel:   "info",
		},
		Storage: StorageConfig{
			BaseDir: "./data",
		},
		Hub: HubConfig{
			MailboxSize: 32,
		},
	}
}

// Load reads and decodes a TOML configuration file, starting from Default
// so omitted fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

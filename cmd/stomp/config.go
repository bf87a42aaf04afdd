package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultURI = "tcp://localhost:61613"

// Config is the CLI configuration loaded from ~/.stomp.toml.
type Config struct {
	Broker BrokerConfig `toml:"broker"`
}

// BrokerConfig carries connection defaults so they do not have to be
// repeated on every invocation.
type BrokerConfig struct {
	URI      string `toml:"uri"`
	Login    string `toml:"login"`
	Passcode string `toml:"passcode"`
}

// loadConfig reads the config file and applies environment overrides
// (STOMP_URI, STOMP_LOGIN, STOMP_PASSCODE). STOMP_CONFIG points at an
// alternative file. A missing file is not an error; flags take precedence
// over everything loaded here.
func loadConfig() (*Config, error) {
	cfg := &Config{
		Broker: BrokerConfig{URI: defaultURI},
	}

	path := os.Getenv("STOMP_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".stomp.toml")
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			if cfg.Broker.URI == "" {
				cfg.Broker.URI = defaultURI
			}
		}
	}

	if uri := os.Getenv("STOMP_URI"); uri != "" {
		cfg.Broker.URI = uri
	}
	if login := os.Getenv("STOMP_LOGIN"); login != "" {
		cfg.Broker.Login = login
	}
	if passcode := os.Getenv("STOMP_PASSCODE"); passcode != "" {
		cfg.Broker.Passcode = passcode
	}
	return cfg, nil
}

package bot

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Auth struct {
		Enabled  bool   `toml:"enabled"`
		RedisURL string `toml:"redis_url"`
	} `toml:"auth"`
	Bot struct {
		Token    string  `toml:"token"`
		AdminIDs []int64 `toml:"admin_ids"`
	} `toml:"bot"`
	API struct {
		BaseURL       string            `toml:"base_url"`
		Event         string            `toml:"event"`
		Token         string            `toml:"token"`
		AdminID       string            `toml:"admin_id"`
		AdminIDHeader string            `toml:"admin_id_header"`
		ExtraHeaders  map[string]string `toml:"extra_headers"`
	} `toml:"api"`
	Features map[string]string `toml:"features"`
}

func ReadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Failed to load config: %v", err)
	}

	if cfg.API.BaseURL == "" || cfg.API.Event == "" {
		return nil, fmt.Errorf("api.base_url and api.event are required")
	}

	return &cfg, nil
}

package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kardemumma/internal/gate"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type GSheetConfig struct {
	CredentialsPath  string `toml:"credentials_path"`
	Schedule         string `toml:"schedule"`
	SheetID          string `toml:"sheet_id"`
	SheetName        string `toml:"sheet_name"`
	LeaderboardRange string `toml:"leaderboard_range"`
	TimestampRange   string `toml:"timestamp_range"`
}

type Config struct {
	Server struct {
		Port       string `toml:"port"`
		EnableAuth bool   `toml:"enable_auth"`
	} `toml:"server"`

	Auth struct {
		RedisURL         string `toml:"redis_url"`
		TokenHeader      string `toml:"token_header"`
		TokenKeyTemplate string `toml:"token_key_template"`
	} `toml:"auth"`

	API struct {
		AdminIDHeader   string         `toml:"admin_id_header"`
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"api"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Ranking struct {
		AttendanceWeight int `toml:"attendance_weight"`
		PaymentBonus     int `toml:"payment_bonus"`
	} `toml:"ranking"`

	// Features maps capability name to its RFC3339 unlock instant.
	// Missing capabilities fall back to the deployment defaults.
	Features map[string]string `toml:"features"`

	GSheet        map[string][]GSheetConfig `toml:"gsheet"`
	EmojiVariants []string                  `toml:"emoji_variants"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}

	logger.Debug.Printf("Loaded feature schedule: %+v", config.Features)

	return &config, nil
}

// FeatureSchedule builds the unlock schedule: deployment defaults,
// overridden by any [features] entries in the config.
func (c *Config) FeatureSchedule() (map[string]time.Time, error) {
	schedule := gate.DefaultSchedule()
	for name, raw := range c.Features {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unlock instant for %q: %w", name, err)
		}
		schedule[name] = at
	}
	return schedule, nil
}

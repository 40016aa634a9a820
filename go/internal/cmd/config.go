package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/minigames/go/internal/events"
)

// EnvConfig holds process settings read from the environment
type EnvConfig struct {
	ConfigPath    string `env:"CONFIG_PATH" envDefault:"config.yaml"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	EventsEnabled bool   `env:"EVENTS_ENABLED" envDefault:"true"`
	ProbeHost     string `env:"PROBE_HOST" envDefault:"localhost"`
}

// GameConfig controls one game listener
type GameConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type JanitorConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Retention time.Duration `yaml:"retention"`
	Interval  time.Duration `yaml:"interval"`
}

// gameOverride is one games entry as written in config.yaml; nil fields keep the default.
type gameOverride struct {
	Enabled *bool `yaml:"enabled"`
	Port    *int  `yaml:"port"`
}

// fileConfig mirrors config.yaml. Janitor is seeded with the defaults before decoding.
type fileConfig struct {
	Games   map[string]gameOverride `yaml:"games"`
	Janitor JanitorConfig           `yaml:"janitor"`
}

// Config is the parsed config.yaml
type Config struct {
	Games   map[string]GameConfig `yaml:"games"`
	Janitor JanitorConfig         `yaml:"janitor"`
}

var defaultPorts = map[string]int{
	events.GameQueens:      8081,
	events.GameSnakeLadder: 8080,
	events.GameHanoi:       8089,
	events.GameTSP:         8086,
	events.GameTraffic:     9090,
}

func defaultConfig() *Config {
	cfg := &Config{
		Games: make(map[string]GameConfig, len(events.Games)),
		Janitor: JanitorConfig{
			Enabled:   true,
			Retention: 7 * 24 * time.Hour,
			Interval:  time.Hour,
		},
	}
	for _, game := range events.Games {
		cfg.Games[game] = GameConfig{Enabled: true, Port: defaultPorts[game]}
	}
	return cfg
}

// loadEnv loads .env, parses EnvConfig and configures the global logger.
func loadEnv() (EnvConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

// loadConfig reads path over the defaults. A missing file keeps the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("config file not found, using defaults")
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	file := fileConfig{Janitor: cfg.Janitor}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for game, override := range file.Games {
		if !events.IsKnownGame(game) {
			return nil, fmt.Errorf("unknown game %q in config", game)
		}
		gc := cfg.Games[game]
		if override.Enabled != nil {
			gc.Enabled = *override.Enabled
		}
		if override.Port != nil && *override.Port != 0 {
			gc.Port = *override.Port
		}
		cfg.Games[game] = gc
	}
	cfg.Janitor = file.Janitor

	if cfg.Janitor.Retention <= 0 {
		return nil, fmt.Errorf("janitor retention must be positive")
	}
	if cfg.Janitor.Interval <= 0 {
		return nil, fmt.Errorf("janitor interval must be positive")
	}

	return cfg, nil
}

// enabledGames returns the enabled game keys in display order.
func (c *Config) enabledGames() []string {
	var out []string
	for _, game := range events.Games {
		if c.Games[game].Enabled {
			out = append(out, game)
		}
	}
	return out
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds service configuration loaded from environment variables
// Command-line flags may override individual fields after loading
type Config struct {
	SymbolDataURL string `env:"SYMBOL_DATA_URL" envDefault:"https://symboldata.oss-cn-shanghai.aliyuncs.com/data-beta.json"`
	EmojiDataURL  string `env:"EMOJI_DATA_URL" envDefault:"https://symboldata.oss-cn-shanghai.aliyuncs.com/emoji-data.json"`

	Storage string `env:"STORAGE" envDefault:"badger"` // memory, badger or sqlite
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	Listen       string        `env:"LISTEN" envDefault:":8080"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"8s"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

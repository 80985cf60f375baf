package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Quote  QuoteConfig  `mapstructure:"quote"`
	Stream StreamConfig `mapstructure:"stream"`
	Log    LogConfig    `mapstructure:"log"`
}

// QuoteConfig selects the symbol to poll and the cadence of the loop.
type QuoteConfig struct {
	Symbol   string        `mapstructure:"symbol"`
	Interval time.Duration `mapstructure:"interval"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml when present and overrides with environment
// variables (e.g., QUOTE_SYMBOL, STREAM_NAME). Every key has a default, so a
// missing config file is not an error.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("quote.symbol", "AAPL")
	v.SetDefault("quote.interval", 30*time.Second)
	v.SetDefault("stream.region", "us-east-1")
	v.SetDefault("stream.name", "stock-stream")
	v.SetDefault("stream.endpoint", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")

	// Support environment variables with dot notation (e.g., STREAM_NAME)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read config: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	if cfg.Quote.Symbol == "" {
		log.Fatalf("quote.symbol must not be empty")
	}
	if cfg.Quote.Interval <= 0 {
		log.Fatalf("quote.interval must be positive, got %v", cfg.Quote.Interval)
	}

	return &cfg
}

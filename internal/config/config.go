package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/finlens/extrato-parser/internal/models"
)

// Config holds everything tunable about the converter. Values come from
// defaults, an optional config.yaml, and EXTRATO_* environment variables,
// in increasing priority.
type Config struct {
	Cache struct {
		Dir           string        `mapstructure:"dir"`
		TTL           time.Duration `mapstructure:"ttl"`
		SweepSchedule string        `mapstructure:"sweep_schedule"`
	} `mapstructure:"cache"`

	Pipeline struct {
		MinPageTransactions int `mapstructure:"min_page_transactions"`
		SamplePages         int `mapstructure:"sample_pages"`
	} `mapstructure:"pipeline"`

	Classify struct {
		// FallbackType is assigned when no keyword or sign matches a line.
		FallbackType string `mapstructure:"fallback_type"`
	} `mapstructure:"classify"`

	OCR struct {
		Language string `mapstructure:"language"`
		DPI      int    `mapstructure:"dpi"`
	} `mapstructure:"ocr"`

	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
}

// Load reads configuration. A missing config file is fine; a malformed one
// is not.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.extrato-parser")

	v.SetEnvPrefix("EXTRATO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.dir", ".extrato-cache")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.sweep_schedule", "@hourly")
	v.SetDefault("pipeline.min_page_transactions", 3)
	v.SetDefault("pipeline.sample_pages", 3)
	v.SetDefault("classify.fallback_type", "CREDIT")
	v.SetDefault("ocr.language", "por")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("server.addr", ":8080")
}

func (c *Config) validate() error {
	switch strings.ToUpper(c.Classify.FallbackType) {
	case string(models.Credit), string(models.Debit):
	default:
		return fmt.Errorf("classify.fallback_type must be %s or %s, got %q",
			models.Credit, models.Debit, c.Classify.FallbackType)
	}
	if c.Pipeline.MinPageTransactions < 1 {
		return fmt.Errorf("pipeline.min_page_transactions must be >= 1, got %d",
			c.Pipeline.MinPageTransactions)
	}
	if c.Pipeline.SamplePages < 1 {
		return fmt.Errorf("pipeline.sample_pages must be >= 1, got %d",
			c.Pipeline.SamplePages)
	}
	if c.OCR.DPI < 72 {
		return fmt.Errorf("ocr.dpi must be >= 72, got %d", c.OCR.DPI)
	}
	return nil
}

// FallbackType returns the configured fallback as a model type.
func (c *Config) FallbackType() models.TransactionType {
	return models.TransactionType(strings.ToUpper(c.Classify.FallbackType))
}

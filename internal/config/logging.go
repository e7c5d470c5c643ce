package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type LogConfig struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	Level       string `env:"LOG_LEVEL"`
	Pretty      string `env:"LOG_PRETTY"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c LogConfig) IsProd() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "prod")
}

// EffectiveLevel is LOG_LEVEL when it names a valid level, otherwise info in
// prod and debug everywhere else.
func (c LogConfig) EffectiveLevel() string {
	if v := strings.ToLower(strings.TrimSpace(c.Level)); v != "" {
		if _, err := zerolog.ParseLevel(v); err == nil {
			return v
		}
	}
	if c.IsProd() {
		return "info"
	}
	return "debug"
}

// UsePretty reports whether console output is wanted. LOG_PRETTY decides when
// set; otherwise only non-prod environments get the console writer.
func (c LogConfig) UsePretty() bool {
	switch strings.ToLower(strings.TrimSpace(c.Pretty)) {
	case "":
		return !c.IsProd()
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

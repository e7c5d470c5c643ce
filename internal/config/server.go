package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:"0.0.0.0:3000"`
	MetricsAddr string `env:"METRICS_ADDR"`

	// Checked per request so that a missing URL surfaces as a 500 rather
	// than a startup failure.
	DiscordWebhookURL string `env:"DISCORD_WEBHOOK_URL"`
	DiscordUsername   string `env:"DISCORD_USERNAME" envDefault:"Keel Deployments"`
	DiscordTimeoutMS  int    `env:"DISCORD_TIMEOUT_MS" envDefault:"10000"`

	ShutdownTimeoutMS int `env:"SHUTDOWN_TIMEOUT_MS" envDefault:"10000"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c ServerConfig) DiscordTimeout() time.Duration {
	if c.DiscordTimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.DiscordTimeoutMS) * time.Millisecond
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

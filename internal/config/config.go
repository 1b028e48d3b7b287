// Package config reads the client's settings from the environment (.env is loaded by main).
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultGatewayURL = "http://localhost:8080"

type Config struct {
	GatewayURL     string        `env:"GATEWAY_URL" envDefault:"http://localhost:8080"`
	Token          string        `env:"HP_TOKEN"`
	Passphrase     string        `env:"HEALTH_PASS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	PostsDir       string        `env:"POSTS_DIR"`
	CalorieTarget  float64       `env:"CALORIE_TARGET" envDefault:"2000"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}

package server

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	xenv "github.com/garrettladley/healthmesh/internal/env"
	"github.com/garrettladley/healthmesh/internal/health"
)

type Config struct {
	Port              string           `env:"PORT" envDefault:"8081"`
	Env               xenv.Environment `env:"ENV" envDefault:"development"`
	Passphrase        string           `env:"HEALTH_PASS"`
	SnapshotTTL       time.Duration    `env:"SNAPSHOT_TTL" envDefault:"24h"`
	SyncRatePerMinute int              `env:"SYNC_RATE_PER_MINUTE" envDefault:"6"`
	PostsDir          string           `env:"POSTS_DIR" envDefault:"posts"`
	CalorieTarget     float64          `env:"CALORIE_TARGET" envDefault:"2000"`
	Redis             RedisConfig
	Gateway           GatewayConfig
}

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

type GatewayConfig struct {
	URL            string        `env:"GATEWAY_URL" envDefault:"http://localhost:8080"`
	Token          string        `env:"HP_TOKEN"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

func ReadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Env.IsProduction() && c.Redis.URL == "" {
		errs = append(errs, errors.New("REDIS_URL is required in production"))
	}
	if c.Env.IsProduction() && c.Passphrase == "" {
		errs = append(errs, errors.New("HEALTH_PASS is required in production"))
	}
	if c.SyncRatePerMinute <= 0 {
		errs = append(errs, errors.New("SYNC_RATE_PER_MINUTE must be positive"))
	}
	if c.CalorieTarget <= 0 {
		errs = append(errs, errors.New("CALORIE_TARGET must be positive"))
	}
	return errors.Join(errs...)
}

// Targets derived from the configured calorie target.
func (c Config) Targets() health.Targets {
	return health.NewTargets(c.CalorieTarget)
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel       string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage        string `yaml:"storage" env:"STORAGE" env-default:"redis"`
	Redis          Redis  `yaml:"redis" env-prefix:"REDIS_"`
	JWTSecretKey   string `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	MaxMoveRetries int    `yaml:"max-move-retries" env:"MAX_MOVE_RETRIES" env-default:"5"`
	PublicURL      string `yaml:"public-url" env:"PUBLIC_URL"`
}

type Redis struct {
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"PORT" env-default:"6379"`
}

// Load - reads the yaml file at path, then applies environment overrides.
// A missing file leaves only defaults and environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("%w: storage must be %q or %q, got %q", ErrInvalidConfig, StorageRedis, StorageMemory, that.Storage)
	}

	if that.JWTSecretKey == "" {
		return fmt.Errorf("%w: jwt-secret-key is required", ErrInvalidConfig)
	}

	if that.MaxMoveRetries < 0 {
		return fmt.Errorf("%w: max-move-retries must not be negative", ErrInvalidConfig)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

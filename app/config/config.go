package config

import (
	"fmt"

	"poststream/app/models"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	MaxTitleLen    int    `env:"MAX_TITLE_LEN,default=50" validate:"gt=0,lte=50"`
	MaxPostLen     int    `env:"MAX_POST_LEN,default=500" validate:"gt=0"`
	BadgerFilepath string `env:"BADGER_FILEPATH,default=data/badger" validate:"required"`
	Host           string `env:"HOST,default=localhost"`
	Port           int    `env:"PORT,default=8080" validate:"gt=0,lte=65535"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	Colours        bool   `env:"COLOURS,default=true"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Limits().Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Limits() models.Limits {
	return models.Limits{
		MaxTitleLen: c.MaxTitleLen,
		MaxPostLen:  c.MaxPostLen,
	}
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

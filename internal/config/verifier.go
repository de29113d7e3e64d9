package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Verifier настройки прогона контрактных проверок.
type Verifier struct {
	Env               string        `env:"ENV" env-default:"local"`
	BaseURL           string        `env:"BASE_URL"`
	APIBaseURL        string        `env:"API_BASE_URL" env-required:"true"`
	FixturePath       string        `env:"FIXTURE_PATH" env-default:"fixtures/headersData.json"`
	TestPaymentAmount string        `env:"TEST_PAYMENT_AMOUNT" env-default:"0.01"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
}

// LoadVerifier подгружает dotenvPath (если файл есть) и читает настройки из окружения.
// Уже выставленные переменные окружения не перезаписываются.
func LoadVerifier(dotenvPath string) (*Verifier, error) {
	const op = "config.LoadVerifier"
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Verifier
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

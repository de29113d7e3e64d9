// Package config описывает настройки сервиса платёжной инициации и верификатора контракта
// и загружает их из YAML-файла и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config общая структура для хранения настроек сервера
type Config struct {
	Env             string   `yaml:"env" env:"ENV" env-default:"local"`
	PublicURL       string   `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:8080"`
	Clients         []Client `yaml:"clients"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	HTTPServer      `yaml:"http_server"`
	GRPCServer      `yaml:"grpc_server"`
	ConfirmToken    `yaml:"confirm_token"`
	RateLimit       `yaml:"rate_limit"`
}

// Storage настройки подключения к базе данных
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"STORAGE_DSN" env-default:"file:pis.db?_pragma=busy_timeout(5000)"`
}

// RedisConnection настройки кэша платежей. Пустой адрес отключает кэш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URLRabbit    string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange     string        `yaml:"exchange" env-default:"payments"`
	Retries      int           `yaml:"retries" env-default:"5"`
	RetriesDelay time.Duration `yaml:"retries_delay" env-default:"2s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// GRPCServer адрес gRPC health-сервера. Пустой адрес отключает сервер.
type GRPCServer struct {
	AddressGRPC string `yaml:"address" env:"GRPC_ADDRESS"`
}

// ConfirmToken настройки подписи ссылок подтверждения
type ConfirmToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"CONFIRM_TOKEN_SECRET" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"30m"`
}

// RateLimit ограничение частоты запросов одного клиента. RPS <= 0 отключает ограничение.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// Client учётные данные клиента API, которые регистрируются при старте
type Client struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Name         string `yaml:"name"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Driver)
	}
	for i, client := range c.Clients {
		if client.ClientID == "" || client.ClientSecret == "" {
			return fmt.Errorf("clients[%d]: client_id and client_secret are required", i)
		}
	}
	if c.JWTSecretKey == "" {
		return errors.New("confirm_token.jwt_secret_key is required")
	}
	return nil
}

// String возвращает конфиг без секретов, пригодный для логов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"PublicURL: %s\n"+
			"Storage: %s\n"+
			"Redis: %s (db %d)\n"+
			"RabbitMQ exchange: %s (enabled: %t)\n"+
			"HTTPServer: %s timeout %s idle %s\n"+
			"GRPCServer: %s\n"+
			"ConfirmTokenTTL: %s\n"+
			"RateLimit: %.1f rps, burst %d\n"+
			"Clients: %d\n",
		c.Env,
		c.PublicURL,
		c.Driver,
		c.AddressRedis,
		c.DB,
		c.Exchange,
		c.URLRabbit != "",
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressGRPC,
		c.TokenTTL,
		c.RPS,
		c.Burst,
		len(c.Clients),
	)
}

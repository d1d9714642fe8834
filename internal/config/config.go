package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config хранит все параметры приложения
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Orders   OrdersConfig   `yaml:"orders"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"ORDERSYSTEM_HTTP_PORT"`
}

type StorageConfig struct {
	// Driver is "postgres" or "memory".
	Driver string `yaml:"driver" env:"ORDERSYSTEM_STORAGE_DRIVER"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"ORDERSYSTEM_DB_HOST"`
	Port     int    `yaml:"port" env:"ORDERSYSTEM_DB_PORT"`
	User     string `yaml:"user" env:"ORDERSYSTEM_DB_USER"`
	Password string `yaml:"password" env:"ORDERSYSTEM_DB_PASSWORD"`
	Database string `yaml:"database" env:"ORDERSYSTEM_DB_NAME"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host" env:"ORDERSYSTEM_RABBITMQ_HOST"`
	Port     int    `yaml:"port" env:"ORDERSYSTEM_RABBITMQ_PORT"`
	User     string `yaml:"user" env:"ORDERSYSTEM_RABBITMQ_USER"`
	Password string `yaml:"password" env:"ORDERSYSTEM_RABBITMQ_PASSWORD"`
}

type OrdersConfig struct {
	// ListStrategy is one of full-entity, eager-touch, projection.
	ListStrategy string `yaml:"list_strategy" env:"ORDERSYSTEM_ORDERS_LIST_STRATEGY"`
}

// Default returns the settings used when a key is missing from the file.
func Default() *Config {
	return &Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: "postgres"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "ordersystem",
			Database: "ordersystem",
		},
		RabbitMQ: RabbitMQConfig{Port: 5672, User: "guest", Password: "guest"},
		Orders:   OrdersConfig{ListStrategy: "projection"},
	}
}

// Load reads the YAML file at path over the defaults and then applies
// ORDERSYSTEM_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("invalid storage driver %q", c.Storage.Driver)
	}

	switch c.Orders.ListStrategy {
	case "full-entity", "eager-touch", "projection":
	default:
		return fmt.Errorf("invalid orders list strategy %q", c.Orders.ListStrategy)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	return nil
}

// DSN builds the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Database)
}

// URL builds the AMQP URL.
func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}

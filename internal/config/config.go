package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env string `env:"ENV" envDefault:"local"`
	HTTPServer
	WSServer
	MySQL
	Fairness
}

type HTTPServer struct {
	Address     string        `env:"HTTP_ADDRESS" envDefault:"localhost:8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"4s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

type WSServer struct {
	WSAddress     string        `env:"WS_ADDRESS" envDefault:"localhost:8081"`
	WSTimeout     time.Duration `env:"WS_TIMEOUT" envDefault:"10s"`
	WSIdleTimeout time.Duration `env:"WS_IDLE_TIMEOUT" envDefault:"60s"`
	WSHubURL      string        `env:"WS_HUB_URL" envDefault:"ws://localhost:8081/ws"`
}

type MySQL struct {
	MySQLDSN string `env:"MYSQL_DSN" envDefault:"root:123@tcp(localhost:3309)/fairness?charset=utf8mb4,utf8&parseTime=True&loc=Local"`
}

type Fairness struct {
	// Per-casino HMAC keys are part of each casino's published algorithm, not
	// secrets, but they change and are therefore configured per deployment.
	RollbitHMACKey string `env:"PF_ROLLBIT_HMAC_KEY"`
}

// MustLoad reads .env (when present) and the process environment.
// The engine cannot run with a broken config, so it panics on parse failure.
func MustLoad() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic("failed to parse config: " + err.Error())
	}

	return cfg
}

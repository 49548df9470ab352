package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	DefaultMinBet  int64 `env:"DEFAULT_MIN_BET" envDefault:"20"`
	InitialBalance int64 `env:"INITIAL_BALANCE" envDefault:"10000"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	PlayerID  string `env:"PLAYER_ID" envDefault:""`
	TableID   string `env:"TABLE_ID" envDefault:""`
	Hands     int    `env:"HANDS" envDefault:"10"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}

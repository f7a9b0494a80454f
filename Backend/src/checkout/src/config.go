package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	GRPCAddr       string
	DBPath         string
	CartAddr       string
	RabbitURL      string
	RabbitExchange string
	// Delay is how long the simulated payment takes.
	Delay time.Duration
}

func LoadConfig() Config {
	cfg := Config{
		GRPCAddr:       getenv("CHECKOUT_GRPC_ADDR", ":50053"),
		DBPath:         getenv("CHECKOUT_DB_PATH", "./data/checkout.db"),
		CartAddr:       getenv("CART_GRPC_ADDR", "localhost:50051"),
		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "mybookstore.events"),
		Delay:          2 * time.Second,
	}
	if v := os.Getenv("CHECKOUT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Warn().Err(err).Str("value", v).Msg("invalid CHECKOUT_DELAY, using default")
		} else {
			cfg.Delay = d
		}
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	GRPCAddr       string
	HTTPAddr       string
	CatalogAddr    string
	RabbitURL      string
	RabbitExchange string
	MaxSessions    int
	CORSOrigins    []string
	PublishTimeout time.Duration
}

func LoadConfig() Config {
	return Config{
		GRPCAddr:       getenv("CART_GRPC_ADDR", ":50051"),
		HTTPAddr:       getenv("CART_HTTP_ADDR", ":8090"),
		CatalogAddr:    getenv("CATALOG_GRPC_ADDR", "localhost:50052"),
		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "mybookstore.events"),
		MaxSessions:    getenvInt("CART_MAX_SESSIONS", 10000),
		CORSOrigins:    strings.Split(getenv("CART_CORS_ORIGINS", "*"), ","),
		PublishTimeout: 2 * time.Second,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
		return n
	}
	return def
}

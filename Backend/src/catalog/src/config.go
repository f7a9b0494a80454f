package main

import (
	"os"
	"strconv"
)

type Config struct {
	GRPCAddr  string
	DBPath    string
	CacheSize int
}

func LoadConfig() Config {
	return Config{
		GRPCAddr:  getenv("CATALOG_GRPC_ADDR", ":50052"),
		DBPath:    getenv("CATALOG_DB_PATH", "./data/catalog.db"),
		CacheSize: getenvInt("CATALOG_CACHE_SIZE", 256),
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

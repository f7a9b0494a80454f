package main

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr     string
	CatalogAddr  string
	CartAddr     string
	CheckoutAddr string
	// CheckoutTimeout bounds a PlaceOrder call, which includes the payment delay.
	CheckoutTimeout time.Duration
	PageSize        int32
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:        getenv("STOREFRONT_HTTP_ADDR", ":8080"),
		CatalogAddr:     getenv("CATALOG_GRPC_ADDR", "localhost:50052"),
		CartAddr:        getenv("CART_GRPC_ADDR", "localhost:50051"),
		CheckoutAddr:    getenv("CHECKOUT_GRPC_ADDR", "localhost:50053"),
		CheckoutTimeout: 15 * time.Second,
		PageSize:        12,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

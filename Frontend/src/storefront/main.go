package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/ahinestrog/storefront/api/rpc"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := LoadConfig()
	log.Info().
		Str("http", cfg.HTTPAddr).
		Str("catalog", cfg.CatalogAddr).
		Str("cart", cfg.CartAddr).
		Str("checkout", cfg.CheckoutAddr).
		Msg("starting storefront")

	catalogCC, err := rpc.Dial(cfg.CatalogAddr)
	must(err)
	defer catalogCC.Close()
	cartCC, err := rpc.Dial(cfg.CartAddr)
	must(err)
	defer cartCC.Close()
	checkoutCC, err := rpc.Dial(cfg.CheckoutAddr)
	must(err)
	defer checkoutCC.Close()

	s, err := NewServer(cfg,
		catalogapi.NewCatalogClient(catalogCC),
		cartapi.NewCartClient(cartCC),
		checkoutapi.NewCheckoutClient(checkoutCC),
	)
	must(err)

	httpSrv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     s.routes(),
		ReadTimeout: 5 * time.Second,
		// PlaceOrder blocks for the payment delay.
		WriteTimeout: cfg.CheckoutTimeout + 5*time.Second,
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(ctx)
	}()

	log.Info().Msg("HTTP listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http")
	}
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

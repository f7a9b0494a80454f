package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	"github.com/ahinestrog/storefront/api/rpc"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/reflection"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := LoadConfig()
	log.Info().
		Str("grpc", cfg.GRPCAddr).
		Str("http", cfg.HTTPAddr).
		Str("catalog", cfg.CatalogAddr).
		Int("max_sessions", cfg.MaxSessions).
		Msg("starting cart service")

	rb, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
	must(err)
	defer rb.Close()
	if rb == nil {
		log.Warn().Msg("RABBIT_URL empty, cart events disabled")
	}

	carts, err := NewRegistry(cfg.MaxSessions, CartLog, CartEvents(rb, cfg.PublishTimeout))
	must(err)

	cc, err := rpc.Dial(cfg.CatalogAddr)
	must(err)
	defer cc.Close()

	srv := NewCartServer(carts, NewCatalogClient(cc))

	grpcSrv := rpc.NewServer()
	cartapi.RegisterCartServer(grpcSrv, srv)
	reflection.Register(grpcSrv)

	gw, err := NewGateway(srv, cfg.CORSOrigins)
	must(err)
	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      gw,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	must(err)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http gateway")
		}
	}()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(ctx)
		grpcSrv.GracefulStop()
	}()

	log.Info().Msg("gRPC listening")
	must(grpcSrv.Serve(lis))
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

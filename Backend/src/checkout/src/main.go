package main

import (
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
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
		Str("addr", cfg.GRPCAddr).
		Str("db", cfg.DBPath).
		Str("cart", cfg.CartAddr).
		Dur("delay", cfg.Delay).
		Msg("starting checkout service")

	must(os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755))
	repo, err := NewRepository(cfg.DBPath)
	must(err)
	defer repo.Close()

	rb, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
	must(err)
	defer rb.Close()

	cc, err := rpc.Dial(cfg.CartAddr)
	must(err)
	defer cc.Close()

	srv := NewCheckoutServer(repo, cartapi.NewCartClient(cc), newSimulatedProvider(cfg.Delay), rb)

	grpcSrv := rpc.NewServer()
	checkoutapi.RegisterCheckoutServer(grpcSrv, srv)
	reflection.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	must(err)

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
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

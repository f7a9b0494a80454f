package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	"github.com/ahinestrog/storefront/api/rpc"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func openSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := LoadConfig()

	db, err := openSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()

	repo := NewSQLiteRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if n, err := repo.Seed(ctx); err != nil {
		log.Warn().Err(err).Msg("seed")
	} else if n > 0 {
		log.Info().Int("books", n).Msg("seeded catalog")
	}

	srv, err := NewCatalogServer(repo, cfg.CacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog server")
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	s := rpc.NewServer()
	catalogapi.RegisterCatalogServer(s, srv)

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
		s.GracefulStop()
	}()

	log.Info().Str("addr", cfg.GRPCAddr).Str("db", cfg.DBPath).Msg("catalog service listening")
	if err := s.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

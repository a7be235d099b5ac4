/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the transaction ledger server: configuration,
  dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags, then overlay an optional YAML config file
  2. Build the in-memory store, lock table, and ledger service
  3. Configure the HTTP router
  4. Start the server; drain connections on SIGINT/SIGTERM

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -config    Optional YAML config file path
  -capacity  Maximum total record count (default: 100,000,000)
  -shards    Owner lock stripe width (default: 256)

CONFIG FILE (YAML, all keys optional):
  port: 8080
  capacity: 100000000
  lock_shards: 256
  allowed_origins:
    - http://localhost:5173

  Flags win over file values, which win over defaults.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/punwinger/bank-transaction/api"
	"github.com/punwinger/bank-transaction/ledger"
	"github.com/punwinger/bank-transaction/ledger/store"
)

type config struct {
	Port           int      `yaml:"port"`
	Capacity       int      `yaml:"capacity"`
	LockShards     int      `yaml:"lock_shards"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port")
	configPath := flag.String("config", "", "YAML config file path")
	capacity := flag.Int("capacity", 0, "maximum total record count")
	shards := flag.Int("shards", 0, "owner lock stripe width")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *port != 0 {
		cfg.Port = *port
	}
	if *capacity != 0 {
		cfg.Capacity = *capacity
	}
	if *shards != 0 {
		cfg.LockShards = *shards
	}

	// Wire the ledger
	mem := store.NewMemory(cfg.Capacity)
	svc := ledger.NewService(mem, ledger.NewLockTable(cfg.LockShards))
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Transaction ledger listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown failed: %v", err)
	}
	log.Println("Server exited")
}

func loadConfig(path string) config {
	cfg := config{Port: 8080}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Failed to parse config: %v", err)
		}
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	return cfg
}

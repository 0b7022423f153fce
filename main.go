package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wevetools/weve-market/config"
	"github.com/wevetools/weve-market/core"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file; environment variables override it")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create and register all services
	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Error setting up services:", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, stopping services...")
	registry.StopAll()
	cancel()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/server"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/setup"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/logging"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config.yaml (default: search ., ./configs, /etc/habplanner)")
	flag.Parse()

	fmt.Println("Habitat Planner Server v0.1.0")
	fmt.Println("=============================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// 2. Rule tables, catalog, engine and mediator. Catalog problems are fatal.
	fmt.Printf("Loading module catalog: %s\n", cfg.Catalog.Path)
	app, err := setup.Build(cfg, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog loaded (%d modules)\n", app.Catalog.Current().Len())

	// 3. HTTP and websocket server
	srv := server.NewServer(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)
	go srv.WatchReloads(ctx, reload)

	fmt.Printf("\n✓ Listening on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println("Send SIGHUP to reload the catalog, Ctrl+C to stop")

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Println("\nServer stopped")
	return nil
}

// Command server runs the Odyssey travel journal API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"odyssey/internal/cache"
	"odyssey/internal/config"
	"odyssey/internal/middleware"
	"odyssey/internal/observability"
	"odyssey/internal/server"

	"github.com/fatih/color"
)

const appVersion = "1.0.0"

func main() {
	fmt.Println(color.CyanString("  ___      _\n / _ \\  __| |_   _ ___ ___  ___ _   _\n| | | |/ _` | | | / __/ __|/ _ \\ | | |\n| |_| | (_| | |_| \\__ \\__ \\  __/ |_| |\n \\___/ \\__,_|\\__, |___/___/\\___|\\__, |\n             |___/              |___/"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiCyan).Add(color.Bold).Sprintf("Odyssey API"), appVersion)
	color.HiBlack("=====================================================\n")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.GlobalLogger = middleware.Logger
	observability.Config.EnableRepoLogging = cfg.LogRepositoryOps

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	if err := srv.StartJanitor(ctx); err != nil {
		log.Fatalf("Failed to start upload janitor: %v", err)
	}

	app := srv.NewApp()

	log.Printf("Server starting on port %s (env=%s, public dir=%s)...", cfg.Port, cfg.Env, cfg.PublicDir)
	err = server.Serve(ctx, app, ":"+cfg.Port, 10*time.Second,
		server.Closer(shutdownTracer),
		func(context.Context) error { return cache.Close() },
	)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

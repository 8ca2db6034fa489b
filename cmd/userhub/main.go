// Package main provides the userhub API server entry point
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/userhub/userhub/api"
	"github.com/userhub/userhub/pkg/accounts"
	"github.com/userhub/userhub/pkg/config"
	"github.com/userhub/userhub/pkg/logger"
	"github.com/userhub/userhub/pkg/records"
	"github.com/userhub/userhub/pkg/store"
)

// Version information (set by build process)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dumpConfig  = flag.String("dump-config", "", "Write the effective configuration to the given path and exit")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("userhub %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if *dumpConfig != "" {
		if err := cfg.Save(*dumpConfig); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write configuration: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", err)
	}

	db, err := store.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", err)
	}
	defer func() {
		if err := store.Close(db); err != nil {
			log.Error("Failed to close database", err)
		}
	}()

	accountRepo := accounts.NewRepository(db)
	authService := accounts.NewAuthService(accountRepo, &cfg.Auth)
	recordRepo := records.NewRepository(db, cfg.Auth.EnforceOwnership)

	server := api.NewServer(cfg, log, authService, recordRepo, db)

	// Config reloads only log; the signing secret and DB stay fixed for the
	// process lifetime, so a secret rotation requires a restart.
	cfg.Watch(func(fresh *config.Config) {
		log.Info("Configuration file changed; restart to apply", map[string]interface{}{
			"log_level": fresh.LogLevel,
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("Received signal, shutting down", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatal("Server stopped with error", err)
	}

	log.Info("Server stopped")
}

// Package main is the entry point for the ntask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ntask/internal/backend/notion"
	"ntask/internal/cli"
	"ntask/internal/commands"
	"ntask/internal/config"
	"ntask/internal/logging"
	"ntask/internal/service"

	// Import all command packages to register them via init()
	_ "ntask/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		log := logging.New(os.Stderr, cfg.Debug).With().Str("component", "notion").Logger()
		return notion.New(ctx, cfg, notion.WithLogger(log))
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

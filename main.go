package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"userbase/initialize"
	"userbase/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(app.Cfg.HTTP.Host, app.Cfg.HTTP.Port, app.Router, app.Logger)
	if err := srv.Run(ctx); err != nil {
		app.Logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	app.Logger.Info().Msg("server stopped")
}

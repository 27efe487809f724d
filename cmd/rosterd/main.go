// Command rosterd serves the roster generator and evaluator over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turnos/turnos/internal/config"
	"github.com/turnos/turnos/internal/httpapi"
	"github.com/turnos/turnos/pkg/rlog"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	rlog.Init(rlog.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	fmt.Printf("turnos v%s\n", Version)
	fmt.Printf("build: %s (%s)\n", BuildTime, GitCommit)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := httpapi.NewServer(&cfg.API, cfg.Roster, addr)

	go func() {
		rlog.Info().
			Str("addr", addr).
			Str("version", Version).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rlog.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rlog.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		rlog.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}

	rlog.Info().Msg("server stopped")
}

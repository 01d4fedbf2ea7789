// Command api runs the countries HTTP service.
//
// Wiring order mirrors the dependency graph: config first, then loggers,
// then the app container, then data/service/handler layers, and finally the
// router handed to the HTTP server. Shutdown walks the same graph backwards.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tuxaco/countries-api/internal/config"
	"github.com/tuxaco/countries-api/internal/handler"
	loggerPkg "github.com/tuxaco/countries-api/internal/logger"
	"github.com/tuxaco/countries-api/internal/middleware"
	"github.com/tuxaco/countries-api/internal/repository"
	"github.com/tuxaco/countries-api/internal/router"
	"github.com/tuxaco/countries-api/internal/server"
	"github.com/tuxaco/countries-api/internal/service"
)

func main() {
	// Bootstrap logger for failures before the real logger exists.
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.New()
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	log, loggerService, err := loggerPkg.New(cfg)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("failed to initialize logger")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	// Data, business, and HTTP layers, bottom-up. The repository seeds the
	// in-memory collection here; it lives until the process exits.
	repos := repository.NewRepositories(s)

	services, err := service.NewService(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	e := router.New(handlers, middlewares)
	s.SetupHTTPServer(e)

	// Serve in the background so the main goroutine can wait for signals.
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("shutdown complete")
}

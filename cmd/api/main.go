package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "ski_planner/internal/adapters/http_server"
	"ski_planner/internal/adapters/observability"
	"ski_planner/internal/bootstrap"
	"ski_planner/internal/shared"
	mysqlrepo "ski_planner/internal/storage/mysql"
)

func main() {
	shared.LoadDotEnv()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	if cfg.MigrationsDir != "" {
		if err := mysqlrepo.Migrate(cfg.MySQLDSN, cfg.MigrationsDir); err != nil {
			log.Fatal().Err(err).Str("dir", cfg.MigrationsDir).Msg("migrations failed")
		}
		log.Info().Str("dir", cfg.MigrationsDir).Msg("schema up to date")
	}

	stack, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer stack.Close()
	stack.StartFlightCachePurge(ctx, cfg.FlightCachePurge)

	// http
	srv := server.New(cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Snow:    stack.Snow,
		Lodging: stack.Lodging,
		Flights: stack.Flights,
		Agg:     stack.Agg,
		Trips:   stack.Trips,
		Q:       stack.Q,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

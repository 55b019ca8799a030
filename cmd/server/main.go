// Package main is the entry point for the RoboAdvisor recommendation API.
// The service loads a historical price table once at startup, then serves
// rule-based portfolio recommendations over HTTP. A failed data load leaves
// the service running in degraded mode: the health endpoint reports the
// error and recommendation requests fail with a generic message, but the
// process never refuses to start.
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

	"github.com/aristath/roboadvisor/internal/config"
	"github.com/aristath/roboadvisor/internal/modules/advisor"
	advisorhandlers "github.com/aristath/roboadvisor/internal/modules/advisor/handlers"
	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/internal/modules/indicators"
	indicatorhandlers "github.com/aristath/roboadvisor/internal/modules/indicators/handlers"
	"github.com/aristath/roboadvisor/internal/modules/metrics"
	"github.com/aristath/roboadvisor/internal/modules/projection"
	"github.com/aristath/roboadvisor/internal/modules/scoring"
	"github.com/aristath/roboadvisor/internal/scheduler"
	"github.com/aristath/roboadvisor/internal/server"
	"github.com/aristath/roboadvisor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting RoboAdvisor API")

	// Load the price table once. A failure is logged and the store built
	// around a nil table; health reports data_status "error".
	table := loadPriceTable(cfg, log)
	store := history.NewStore(table, log)

	if store.Available() {
		first, last := table.DateRange()
		log.Info().
			Int("assets", table.AssetCount()).
			Str("from", first.Format("2006-01-02")).
			Str("to", last.Format("2006-01-02")).
			Msg("Price data loaded")
	} else {
		log.Warn().Msg("Price data unavailable, serving in degraded mode")
	}

	calculator := metrics.NewCalculator(log)
	engine := scoring.NewEngine(log)
	projector := projection.New(log)

	advisorService := advisor.NewService(store, calculator, engine, projector, log)
	indicatorService := indicators.NewService(store, log)

	srv := server.New(server.Config{
		Port:              cfg.Port,
		DevMode:           cfg.DevMode,
		Log:               log,
		AdvisorHandlers:   advisorhandlers.NewHandler(advisorService, store, log),
		IndicatorHandlers: indicatorhandlers.NewHandler(indicatorService, log),
		SystemHandlers:    server.NewSystemHandlers(log),
	})

	sched := scheduler.New(log)
	if err := sched.AddJob("@hourly", server.NewStatusJob(store, log)); err != nil {
		log.Error().Err(err).Msg("Failed to register status snapshot job")
	}
	sched.Start()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// loadPriceTable loads price history from the configured source. Returns
// nil on failure; the caller builds a degraded store around it.
func loadPriceTable(cfg *config.Config, log zerolog.Logger) *history.PriceTable {
	var (
		table *history.PriceTable
		err   error
	)

	switch cfg.DataSource {
	case config.SourceSQLite:
		table, err = history.LoadSQLite(cfg.PricesDB, log)
	default:
		table, err = history.LoadCSV(cfg.PricesFile, log)
	}

	if err != nil {
		log.Error().Err(err).Str("source", cfg.DataSource).Msg("Failed to load price data")
		return nil
	}

	return table
}

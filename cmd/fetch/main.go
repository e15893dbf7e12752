// Package main provides the fetch command: it pulls work metadata from
// OpenAlex, normalizes it into paper records, and writes the record snapshot
// the API server loads at startup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scholarnet/research-network-service/internal/config"
	"github.com/scholarnet/research-network-service/internal/ingest"
	"github.com/scholarnet/research-network-service/internal/observability"
	"github.com/scholarnet/research-network-service/internal/store"
	"github.com/scholarnet/research-network-service/internal/upstream"
	"github.com/scholarnet/research-network-service/internal/upstream/openalex"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "fetch").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("research_network")
	}

	source := openalex.New(openalex.Config{
		BaseURL:    cfg.OpenAlex.BaseURL,
		Email:      cfg.OpenAlex.Email,
		Timeout:    cfg.OpenAlex.Timeout,
		RateLimit:  cfg.OpenAlex.RateLimit,
		PerPage:    cfg.OpenAlex.PerPage,
		MaxRecords: cfg.OpenAlex.MaxRecords,
	}, logger)

	fetchLogger := observability.WithFetchContext(logger, source.Name(), cfg.OpenAlex.InstitutionID)
	fetchLogger.Info().
		Int("max_records", cfg.OpenAlex.MaxRecords).
		Int("year_from", cfg.OpenAlex.YearFrom).
		Int("year_to", cfg.OpenAlex.YearTo).
		Msg("fetching works")

	start := time.Now()
	result, err := source.FetchAll(ctx, upstream.FetchParams{
		InstitutionID: cfg.OpenAlex.InstitutionID,
		ConceptID:     cfg.OpenAlex.ConceptID,
		YearFrom:      cfg.OpenAlex.YearFrom,
		YearTo:        cfg.OpenAlex.YearTo,
		MaxRecords:    cfg.OpenAlex.MaxRecords,
	})
	if err != nil {
		if metrics != nil {
			metrics.RecordFetchFailed(source.Name(), "fetch_error")
		}
		return fmt.Errorf("fetch works: %w", err)
	}
	if metrics != nil {
		metrics.RecordFetch(source.Name(), result.Pages, time.Since(start).Seconds())
	}

	fetchLogger.Info().
		Int("fetched", len(result.Records)).
		Int("total_available", result.TotalAvailable).
		Int("pages", result.Pages).
		Dur("duration", time.Since(start)).
		Msg("fetch complete")

	normalizer := ingest.NewNormalizer(logger)
	records, report := normalizer.Normalize(result.Records)
	if metrics != nil {
		metrics.RecordIngestion(report.Accepted, report.Dropped)
	}
	if len(records) == 0 {
		return fmt.Errorf("no valid records after normalization (%d dropped)", report.Dropped)
	}

	st := store.New(records)
	if err := st.Save(cfg.Store.SnapshotPath); err != nil {
		return fmt.Errorf("save record snapshot: %w", err)
	}

	logger.Info().
		Str("path", cfg.Store.SnapshotPath).
		Int("accepted", report.Accepted).
		Int("dropped", report.Dropped).
		Msg("record snapshot written")

	return nil
}

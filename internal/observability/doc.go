// Package observability provides logging and metrics support for the
// research network service.
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Int("records", n).Msg("snapshot loaded")
//
// # Metrics
//
// Create metrics with a service namespace and record events through the
// typed helpers:
//
//	metrics := observability.NewMetrics("research_network")
//	metrics.RecordPipelineRun(duration.Seconds())
//
// Collectors register with the default Prometheus registry; expose them with
// promhttp.Handler on the metrics port.
package observability

package analytics

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// Config holds pipeline parameters.
type Config struct {
	// CollaborationThreshold is the minimum paper count for an author to
	// appear in the collaboration graph. Defaults to
	// DefaultCollaborationThreshold when zero or negative.
	CollaborationThreshold int
}

// Snapshot is the read-only result of one pipeline run. Once built it is
// never mutated, so it can be shared across request handlers without locking.
type Snapshot struct {
	Citation      CitationGraph
	Collaboration CollaborationGraph
	Timeline      TimelineSeries
	Histograms    HistogramTable
	RecordCount   int
}

// Histogram returns the citation distribution for the given year, or a
// NotFoundError if the year is absent from the record set.
func (s *Snapshot) Histogram(year int) ([]HistogramBucket, error) {
	buckets, ok := s.Histograms[year]
	if !ok {
		return nil, domain.NewNotFoundError("histogram", strconv.Itoa(year))
	}
	return buckets, nil
}

// Pipeline computes all derived views from a record snapshot in one
// synchronous batch. Each run recomputes everything from scratch; nothing is
// updated incrementally.
type Pipeline struct {
	threshold int
	logger    zerolog.Logger
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg Config, logger zerolog.Logger) *Pipeline {
	threshold := cfg.CollaborationThreshold
	if threshold <= 0 {
		threshold = DefaultCollaborationThreshold
	}
	return &Pipeline{
		threshold: threshold,
		logger:    logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run derives all four views from the given records. It fails with
// domain.ErrNoRecords when the record set is empty; the pipeline never runs
// on partial or absent input.
func (p *Pipeline) Run(records []domain.PaperRecord) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}

	start := time.Now()

	snap := &Snapshot{
		Citation:      BuildCitationGraph(records),
		Collaboration: BuildCollaborationGraph(records, p.threshold),
		Timeline:      BuildTimeline(records),
		Histograms:    BuildHistograms(records),
		RecordCount:   len(records),
	}

	p.logger.Info().
		Int("records", snap.RecordCount).
		Int("citation_nodes", len(snap.Citation.Nodes)).
		Int("citation_edges", len(snap.Citation.Edges)).
		Int("collaboration_nodes", len(snap.Collaboration.Nodes)).
		Int("collaboration_edges", len(snap.Collaboration.Edges)).
		Int("years", len(snap.Timeline)).
		Dur("duration", time.Since(start)).
		Msg("pipeline run complete")

	return snap, nil
}

// Threshold returns the collaboration threshold the pipeline was built with.
func (p *Pipeline) Threshold() int {
	return p.threshold
}

package analytics

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarnet/research-network-service/internal/domain"
)

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(Config{CollaborationThreshold: 2}, zerolog.Nop())

	t.Run("two-paper snapshot produces all four views", func(t *testing.T) {
		records := []domain.PaperRecord{
			{
				ID:    "p1",
				Title: "First",
				Year:  2020,
				Authors: []domain.Author{
					{ID: "a1", Name: "Ada"},
					{ID: "a2", Name: "Ben"},
				},
			},
			{
				ID:    "p2",
				Title: "Second",
				Year:  2020,
				Authors: []domain.Author{
					{ID: "a1", Name: "Ada"},
					{ID: "a2", Name: "Ben"},
				},
				CitationCount: 1,
				ReferenceIDs:  []string{"p1"},
			},
		}

		snap, err := p.Run(records)
		require.NoError(t, err)

		assert.Equal(t, 2, snap.RecordCount)

		require.Len(t, snap.Citation.Nodes, 2)
		assert.Equal(t, []CitationEdge{{Source: "p2", Target: "p1"}}, snap.Citation.Edges)

		require.Len(t, snap.Collaboration.Nodes, 2)
		assert.Equal(t, AuthorNode{ID: "a1", Name: "Ada", PaperCount: 2}, snap.Collaboration.Nodes[0])
		assert.Equal(t, AuthorNode{ID: "a2", Name: "Ben", PaperCount: 2}, snap.Collaboration.Nodes[1])
		assert.Equal(t, []CollaborationEdge{{Source: "a1", Target: "a2", Weight: 2}}, snap.Collaboration.Edges)

		assert.Equal(t, TimelineSeries{{Year: 2020, Count: 2}}, snap.Timeline)

		buckets, err := snap.Histogram(2020)
		require.NoError(t, err)
		assert.Equal(t, []HistogramBucket{
			{Label: "0", Count: 1},
			{Label: "1-4", Count: 1},
			{Label: "5-9", Count: 0},
			{Label: "10-24", Count: 0},
			{Label: "25-49", Count: 0},
			{Label: "50+", Count: 0},
		}, buckets)
	})

	t.Run("empty record set fails", func(t *testing.T) {
		snap, err := p.Run(nil)

		assert.Nil(t, snap)
		assert.ErrorIs(t, err, domain.ErrNoRecords)
	})

	t.Run("same input yields identical snapshots", func(t *testing.T) {
		records := []domain.PaperRecord{
			paper("p1", 2020, 3, []string{"b", "a"}, nil),
			paper("p2", 2021, 0, []string{"a", "b"}, []string{"p1"}),
			paper("p3", 2021, 12, []string{"c", "a"}, []string{"p2", "p1"}),
		}

		first, err := p.Run(records)
		require.NoError(t, err)
		second, err := p.Run(records)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestSnapshotHistogram(t *testing.T) {
	p := NewPipeline(Config{}, zerolog.Nop())
	snap, err := p.Run([]domain.PaperRecord{paper("p1", 2020, 0, nil, nil)})
	require.NoError(t, err)

	t.Run("known year", func(t *testing.T) {
		buckets, err := snap.Histogram(2020)
		require.NoError(t, err)
		assert.Len(t, buckets, len(BucketLabels()))
	})

	t.Run("unknown year", func(t *testing.T) {
		_, err := snap.Histogram(2019)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var nfe *domain.NotFoundError
		require.True(t, errors.As(err, &nfe))
		assert.Equal(t, "histogram", nfe.Entity)
	})
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline(Config{}, zerolog.Nop())
	assert.Equal(t, DefaultCollaborationThreshold, p.Threshold())

	p = NewPipeline(Config{CollaborationThreshold: 5}, zerolog.Nop())
	assert.Equal(t, 5, p.Threshold())
}

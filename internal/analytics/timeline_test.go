package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarnet/research-network-service/internal/domain"
)

func TestBuildTimeline(t *testing.T) {
	t.Run("counts papers per year ascending", func(t *testing.T) {
		records := []domain.PaperRecord{
			paper("p1", 2021, 0, nil, nil),
			paper("p2", 2019, 0, nil, nil),
			paper("p3", 2021, 0, nil, nil),
			paper("p4", 2019, 0, nil, nil),
			paper("p5", 2019, 0, nil, nil),
		}

		series := BuildTimeline(records)

		assert.Equal(t, TimelineSeries{
			{Year: 2019, Count: 3},
			{Year: 2021, Count: 2},
		}, series)
	})

	t.Run("missing years are not synthesized", func(t *testing.T) {
		records := []domain.PaperRecord{
			paper("p1", 2019, 0, nil, nil),
			paper("p2", 2024, 0, nil, nil),
		}

		series := BuildTimeline(records)

		require.Len(t, series, 2)
		assert.Equal(t, 2019, series[0].Year)
		assert.Equal(t, 2024, series[1].Year)
	})

	t.Run("counts sum to record count", func(t *testing.T) {
		records := []domain.PaperRecord{
			paper("p1", 2020, 0, nil, nil),
			paper("p2", 2020, 0, nil, nil),
			paper("p3", 2022, 0, nil, nil),
		}

		series := BuildTimeline(records)

		total := 0
		for _, point := range series {
			total += point.Count
		}
		assert.Equal(t, len(records), total)
	})

	t.Run("empty record set yields empty series", func(t *testing.T) {
		assert.Empty(t, BuildTimeline(nil))
	})
}

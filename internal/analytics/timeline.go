package analytics

import (
	"sort"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// YearCount is one timeline point: the number of papers published in a year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TimelineSeries is the publication count per year, ascending by year.
// Years with no papers are not synthesized; only years present in the data
// appear. Histogram lookups are keyed by this same year set.
type TimelineSeries []YearCount

// BuildTimeline groups records by publication year and counts each group.
func BuildTimeline(records []domain.PaperRecord) TimelineSeries {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Year]++
	}

	series := make(TimelineSeries, 0, len(counts))
	for year, n := range counts {
		series = append(series, YearCount{Year: year, Count: n})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	return series
}

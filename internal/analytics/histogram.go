package analytics

import (
	"math"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// HistogramBucket is one bar of a citation distribution: a fixed citation
// range and the number of papers falling into it.
type HistogramBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramTable maps a publication year to its citation distribution.
// Bucket boundaries are fixed and shared across all years so charts stay
// comparable, and every year emits all buckets in boundary order, including
// empty ones, for consistent chart axes.
type HistogramTable map[int][]HistogramBucket

type bucketRange struct {
	label    string
	min, max int
}

// citationBuckets are the fixed citation-count ranges. Both bounds are
// inclusive.
var citationBuckets = []bucketRange{
	{"0", 0, 0},
	{"1-4", 1, 4},
	{"5-9", 5, 9},
	{"10-24", 10, 24},
	{"25-49", 25, 49},
	{"50+", 50, math.MaxInt},
}

// BucketLabels returns the histogram bucket labels in boundary order.
func BucketLabels() []string {
	labels := make([]string, len(citationBuckets))
	for i, b := range citationBuckets {
		labels[i] = b.label
	}
	return labels
}

// BuildHistograms computes the citation distribution for every year present
// in the record set. Computing all years up front lets the serving layer
// answer any valid year lookup without recomputation.
func BuildHistograms(records []domain.PaperRecord) HistogramTable {
	byYear := make(map[int][]domain.PaperRecord)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	table := make(HistogramTable, len(byYear))
	for year, yearRecords := range byYear {
		buckets := make([]HistogramBucket, len(citationBuckets))
		for i, b := range citationBuckets {
			buckets[i] = HistogramBucket{Label: b.label}
		}
		for _, r := range yearRecords {
			for i, b := range citationBuckets {
				if r.CitationCount >= b.min && r.CitationCount <= b.max {
					buckets[i].Count++
					break
				}
			}
		}
		table[year] = buckets
	}
	return table
}

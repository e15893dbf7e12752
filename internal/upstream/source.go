package upstream

import (
	"context"

	"github.com/scholarnet/research-network-service/internal/ingest"
)

// FetchParams restricts which works a catalog fetch returns.
type FetchParams struct {
	// InstitutionID limits results to works affiliated with one institution
	// (catalog-specific id). Empty means no institution filter.
	InstitutionID string

	// ConceptID limits results to one research field (catalog-specific id).
	// Empty means no concept filter.
	ConceptID string

	// YearFrom and YearTo bound the publication years, inclusive. Zero
	// values leave the corresponding bound open.
	YearFrom int
	YearTo   int

	// MaxRecords caps the total number of works fetched across pages.
	// Zero uses the source default.
	MaxRecords int
}

// FetchResult is the outcome of a paginated catalog fetch.
type FetchResult struct {
	// Records are the raw works in catalog order, not yet validated.
	Records []ingest.RawRecord

	// TotalAvailable is the catalog-reported total matching the filters,
	// which may exceed len(Records) when MaxRecords truncated the fetch.
	TotalAvailable int

	// Pages is the number of result pages requested.
	Pages int
}

// CatalogSource is an external paper-metadata catalog. The fetch happens
// strictly before aggregation starts; implementations apply their own rate
// limiting and retry policy and respect context cancellation.
type CatalogSource interface {
	// FetchAll pages through the catalog until MaxRecords works are
	// collected or results are exhausted.
	FetchAll(ctx context.Context, params FetchParams) (*FetchResult, error)

	// Name returns a human-readable source name for logging and metrics.
	Name() string
}

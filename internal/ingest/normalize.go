// Package ingest validates and normalizes loosely-shaped upstream paper
// metadata into the strict domain.PaperRecord schema. Malformed entries are
// dropped with a warning rather than propagated downstream.
package ingest

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// untitled is the title substituted for works that arrive without one.
const untitled = "Untitled"

// RawAuthor is an author entry as reported by an upstream catalog.
type RawAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawRecord is an unvalidated paper entry as reported by an upstream catalog.
// Field presence is not guaranteed; Normalizer decides what survives.
type RawRecord struct {
	ID            string      `json:"id" validate:"required"`
	Title         string      `json:"title"`
	Year          int         `json:"year" validate:"required,gte=1000,lte=3000"`
	CitationCount int         `json:"citation_count" validate:"gte=0"`
	Authors       []RawAuthor `json:"authors"`
	ReferenceIDs  []string    `json:"reference_ids"`
}

// Report summarizes one normalization pass.
type Report struct {
	Accepted int
	Dropped  int
}

// Normalizer converts raw upstream records into domain records.
type Normalizer struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewNormalizer creates a Normalizer that logs dropped records through the
// given logger.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		validate: validator.New(),
		logger:   logger.With().Str("component", "ingest").Logger(),
	}
}

// Normalize validates every raw record and returns the surviving domain
// records in input order. Records missing an id or publication year, or
// carrying a negative citation count, are dropped with a warning; dropping
// never aborts the pass.
func (n *Normalizer) Normalize(raws []RawRecord) ([]domain.PaperRecord, Report) {
	records := make([]domain.PaperRecord, 0, len(raws))
	var report Report

	for _, raw := range raws {
		if err := n.validate.Struct(raw); err != nil {
			report.Dropped++
			n.logger.Warn().
				Str("id", raw.ID).
				Int("year", raw.Year).
				Err(err).
				Msg("dropping malformed record")
			continue
		}
		records = append(records, n.toDomain(raw))
		report.Accepted++
	}

	if report.Dropped > 0 {
		n.logger.Warn().
			Int("accepted", report.Accepted).
			Int("dropped", report.Dropped).
			Msg("normalization dropped records")
	}

	return records, report
}

// toDomain converts a validated raw record, deduplicating authors and
// discarding empty reference ids.
func (n *Normalizer) toDomain(raw RawRecord) domain.PaperRecord {
	title := raw.Title
	if title == "" {
		title = untitled
	}

	seenAuthors := make(map[string]struct{}, len(raw.Authors))
	authors := make([]domain.Author, 0, len(raw.Authors))
	for _, a := range raw.Authors {
		if a.ID == "" {
			continue
		}
		if _, dup := seenAuthors[a.ID]; dup {
			continue
		}
		seenAuthors[a.ID] = struct{}{}
		authors = append(authors, domain.Author{ID: a.ID, Name: a.Name})
	}

	seenRefs := make(map[string]struct{}, len(raw.ReferenceIDs))
	refs := make([]string, 0, len(raw.ReferenceIDs))
	for _, ref := range raw.ReferenceIDs {
		if ref == "" {
			continue
		}
		if _, dup := seenRefs[ref]; dup {
			continue
		}
		seenRefs[ref] = struct{}{}
		refs = append(refs, ref)
	}

	return domain.PaperRecord{
		ID:            raw.ID,
		Title:         title,
		Year:          raw.Year,
		CitationCount: raw.CitationCount,
		Authors:       authors,
		ReferenceIDs:  refs,
	}
}

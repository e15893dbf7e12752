// Package domain holds the core types shared across the research network service.
package domain

// Author identifies a paper author as reported by the upstream catalog.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaperRecord is a normalized academic paper used as pipeline input.
// Records are immutable once loaded into a store; every aggregation reads
// from the same snapshot and never mutates it.
type PaperRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	CitationCount int      `json:"citation_count"`
	Authors       []Author `json:"authors"`
	ReferenceIDs  []string `json:"reference_ids"`
}

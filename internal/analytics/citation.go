// Package analytics derives the aggregate views served by the research
// network service: the citation graph, the collaboration graph, the
// publication timeline, and per-year citation histograms.
//
// All builders are pure functions over an immutable record snapshot. They
// produce deterministically ordered output, so running a pipeline twice on
// the same input yields structurally identical results.
package analytics

import (
	"github.com/scholarnet/research-network-service/internal/domain"
)

// PaperNode is a citation graph vertex.
type PaperNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Year          int    `json:"year"`
	CitationCount int    `json:"citations"`
}

// CitationEdge is a directed edge from a citing paper to a cited paper.
type CitationEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// CitationGraph holds papers and the citations between them. Edges exist only
// between papers that are both present in the record set, so the graph never
// contains dangling references to excluded works.
type CitationGraph struct {
	Nodes []PaperNode    `json:"nodes"`
	Edges []CitationEdge `json:"links"`
}

// BuildCitationGraph derives the citation graph from a record snapshot.
// Every record becomes a node. An edge A→B is emitted iff B appears in A's
// reference list and B is itself part of the record set. Self-citations and
// duplicate references are skipped.
func BuildCitationGraph(records []domain.PaperRecord) CitationGraph {
	present := make(map[string]struct{}, len(records))
	for _, r := range records {
		present[r.ID] = struct{}{}
	}

	nodes := make([]PaperNode, 0, len(records))
	var edges []CitationEdge

	for _, r := range records {
		nodes = append(nodes, PaperNode{
			ID:            r.ID,
			Title:         r.Title,
			Year:          r.Year,
			CitationCount: r.CitationCount,
		})

		seen := make(map[string]struct{}, len(r.ReferenceIDs))
		for _, ref := range r.ReferenceIDs {
			if ref == r.ID {
				continue
			}
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
			if _, ok := present[ref]; !ok {
				// Reference to a paper outside the studied window.
				// Expected filtering outcome, not an error.
				continue
			}
			edges = append(edges, CitationEdge{Source: r.ID, Target: ref})
		}
	}

	return CitationGraph{Nodes: nodes, Edges: edges}
}

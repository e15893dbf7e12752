package analytics

import (
	"sort"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// DefaultCollaborationThreshold is the minimum number of papers an author
// must appear on to be included in the collaboration graph. Excluding one-off
// contributors keeps the graph legible.
const DefaultCollaborationThreshold = 2

// AuthorNode is a collaboration graph vertex.
type AuthorNode struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PaperCount int    `json:"papers"`
}

// CollaborationEdge is an undirected co-authorship edge. Source is always
// lexically smaller than Target, so each author pair appears at most once.
type CollaborationEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// CollaborationGraph holds authors and weighted co-authorship edges between
// them. Every node's PaperCount is at least the threshold the graph was built
// with; authors below it are excluded along with their edges.
type CollaborationGraph struct {
	Nodes []AuthorNode        `json:"nodes"`
	Edges []CollaborationEdge `json:"links"`
}

type pairKey struct {
	a, b string
}

// BuildCollaborationGraph derives the co-authorship graph from a record
// snapshot. Authors are tallied by the number of distinct papers they appear
// on; only authors with at least threshold papers are kept. For every paper,
// each unordered pair of kept co-authors increments a shared edge weight, so
// an edge's weight equals the exact number of papers its two authors share.
// A threshold below 1 is treated as 1 (keep everyone).
func BuildCollaborationGraph(records []domain.PaperRecord, threshold int) CollaborationGraph {
	if threshold < 1 {
		threshold = 1
	}

	paperCounts := make(map[string]int)
	names := make(map[string]string)
	for _, r := range records {
		for _, id := range distinctAuthorIDs(r) {
			paperCounts[id]++
		}
		for _, a := range r.Authors {
			if a.ID != "" && a.Name != "" {
				names[a.ID] = a.Name
			}
		}
	}

	kept := make(map[string]struct{}, len(paperCounts))
	for id, n := range paperCounts {
		if n >= threshold {
			kept[id] = struct{}{}
		}
	}

	weights := make(map[pairKey]int)
	for _, r := range records {
		ids := distinctAuthorIDs(r)
		coauthors := ids[:0]
		for _, id := range ids {
			if _, ok := kept[id]; ok {
				coauthors = append(coauthors, id)
			}
		}
		for i := 0; i < len(coauthors); i++ {
			for j := i + 1; j < len(coauthors); j++ {
				a, b := coauthors[i], coauthors[j]
				if b < a {
					a, b = b, a
				}
				weights[pairKey{a, b}]++
			}
		}
	}

	nodes := make([]AuthorNode, 0, len(kept))
	for id := range kept {
		nodes = append(nodes, AuthorNode{
			ID:         id,
			Name:       names[id],
			PaperCount: paperCounts[id],
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]CollaborationEdge, 0, len(weights))
	for k, w := range weights {
		edges = append(edges, CollaborationEdge{Source: k.a, Target: k.b, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return CollaborationGraph{Nodes: nodes, Edges: edges}
}

// distinctAuthorIDs returns the non-empty author ids of a record with
// duplicates removed, preserving record order. Upstream data occasionally
// lists the same author twice on one paper; counting them once keeps paper
// tallies and edge weights exact.
func distinctAuthorIDs(r domain.PaperRecord) []string {
	seen := make(map[string]struct{}, len(r.Authors))
	ids := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		if a.ID == "" {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		ids = append(ids, a.ID)
	}
	return ids
}

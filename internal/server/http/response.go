package httpserver

import (
	"github.com/scholarnet/research-network-service/internal/analytics"
)

// Response types for JSON serialization. The wire shapes are owned here, not
// by the analytics package; the frontend's force-layout expects nodes/links
// with source/target fields.

type paperNodeResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Citations int    `json:"citations"`
}

type citationLinkResponse struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type citationNetworkResponse struct {
	Nodes []paperNodeResponse    `json:"nodes"`
	Links []citationLinkResponse `json:"links"`
}

type authorNodeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Papers int    `json:"papers"`
}

type collaborationLinkResponse struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

type collaborationNetworkResponse struct {
	Nodes []authorNodeResponse        `json:"nodes"`
	Links []collaborationLinkResponse `json:"links"`
}

type timelinePointResponse struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type histogramBucketResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type histogramResponse struct {
	Year    int                       `json:"year"`
	Buckets []histogramBucketResponse `json:"buckets"`
}

type indexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Converter functions

func citationGraphToResponse(g analytics.CitationGraph) citationNetworkResponse {
	nodes := make([]paperNodeResponse, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = paperNodeResponse{
			ID:        n.ID,
			Title:     n.Title,
			Year:      n.Year,
			Citations: n.CitationCount,
		}
	}
	links := make([]citationLinkResponse, len(g.Edges))
	for i, e := range g.Edges {
		links[i] = citationLinkResponse{Source: e.Source, Target: e.Target}
	}
	return citationNetworkResponse{Nodes: nodes, Links: links}
}

func collaborationGraphToResponse(g analytics.CollaborationGraph) collaborationNetworkResponse {
	nodes := make([]authorNodeResponse, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = authorNodeResponse{
			ID:     n.ID,
			Name:   n.Name,
			Papers: n.PaperCount,
		}
	}
	links := make([]collaborationLinkResponse, len(g.Edges))
	for i, e := range g.Edges {
		links[i] = collaborationLinkResponse{
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		}
	}
	return collaborationNetworkResponse{Nodes: nodes, Links: links}
}

func timelineToResponse(series analytics.TimelineSeries) []timelinePointResponse {
	points := make([]timelinePointResponse, len(series))
	for i, p := range series {
		points[i] = timelinePointResponse{Year: p.Year, Count: p.Count}
	}
	return points
}

func histogramToResponse(year int, buckets []analytics.HistogramBucket) histogramResponse {
	resp := histogramResponse{
		Year:    year,
		Buckets: make([]histogramBucketResponse, len(buckets)),
	}
	for i, b := range buckets {
		resp.Buckets[i] = histogramBucketResponse{Label: b.Label, Count: b.Count}
	}
	return resp
}

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// indexHandler returns the API endpoint catalog.
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message: "Research Network API",
		Endpoints: map[string]string{
			"/api/v1/network/citation":      "Citation network (papers citing papers)",
			"/api/v1/network/collaboration": "Collaboration network (co-authorship)",
			"/api/v1/timeline":              "Publication counts by year",
			"/api/v1/histogram/{year}":      "Citation histogram for a specific year",
		},
	})
}

// getCitationNetwork handles GET /api/v1/network/citation.
func (s *Server) getCitationNetwork(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, citationGraphToResponse(s.snapshot.Citation))
}

// getCollaborationNetwork handles GET /api/v1/network/collaboration.
func (s *Server) getCollaborationNetwork(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, collaborationGraphToResponse(s.snapshot.Collaboration))
}

// getTimeline handles GET /api/v1/timeline.
func (s *Server) getTimeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, timelineToResponse(s.snapshot.Timeline))
}

// getHistogram handles GET /api/v1/histogram/{year}. It answers from the
// precomputed table; a year absent from the timeline is a 404, not a reason
// to recompute.
func (s *Server) getHistogram(w http.ResponseWriter, r *http.Request) {
	yearParam := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	buckets, err := s.snapshot.Histogram(year)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordHistogramLookup(false)
		}
		writeDomainError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordHistogramLookup(true)
	}
	writeJSON(w, http.StatusOK, histogramToResponse(year, buckets))
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			writeError(w, http.StatusNotFound, nf.Error())
		} else {
			writeError(w, http.StatusNotFound, "resource not found")
		}
	case errors.Is(err, domain.ErrInvalidInput):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid input")
		}
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limited")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

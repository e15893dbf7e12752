package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarnet/research-network-service/internal/domain"
	"github.com/scholarnet/research-network-service/internal/upstream"
)

func testClient(t *testing.T, baseURL string, cfg Config) *Client {
	t.Helper()
	cfg.BaseURL = baseURL
	httpClient := upstream.NewHTTPClient(upstream.HTTPClientConfig{
		Timeout:   5 * time.Second,
		RateLimit: 1000,
		BurstSize: 1000,
	})
	return NewWithHTTPClient(cfg, httpClient, zerolog.Nop())
}

func makeWork(i int) Work {
	return Work{
		ID:              fmt.Sprintf("W%d", i),
		Title:           fmt.Sprintf("Work %d", i),
		PublicationYear: 2020,
		CitedByCount:    i,
		Authorships: []Authorship{
			{Author: AuthorInfo{ID: fmt.Sprintf("A%d", i), DisplayName: fmt.Sprintf("Author %d", i)}},
		},
		ReferencedWorks: []string{"W1"},
	}
}

func TestFetchAllPaginates(t *testing.T) {
	pages := map[int][]Work{
		1: {makeWork(1), makeWork(2)},
		2: {makeWork(3)},
		3: {},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(ListResponse{
			Meta:    Meta{Count: 3, Page: page, PerPage: 2},
			Results: pages[page],
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, Config{PerPage: 2})

	result, err := c.FetchAll(context.Background(), upstream.FetchParams{MaxRecords: 100})
	require.NoError(t, err)

	assert.Len(t, result.Records, 3)
	assert.Equal(t, 3, result.TotalAvailable)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, "W1", result.Records[0].ID)
	assert.Equal(t, "Work 1", result.Records[0].Title)
	assert.Equal(t, 2020, result.Records[0].Year)
}

func TestFetchAllStopsAtMaxRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		works := make([]Work, 50)
		for i := range works {
			works[i] = makeWork((page-1)*50 + i)
		}
		json.NewEncoder(w).Encode(ListResponse{
			Meta:    Meta{Count: 10000, Page: page, PerPage: 50},
			Results: works,
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, Config{})

	result, err := c.FetchAll(context.Background(), upstream.FetchParams{MaxRecords: 75})
	require.NoError(t, err)

	assert.Len(t, result.Records, 75)
	assert.Equal(t, 2, result.Pages)
}

func TestFetchAllBuildsFilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(ListResponse{Meta: Meta{Count: 0}})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, Config{Email: "team@example.org", PerPage: 50})

	_, err := c.FetchAll(context.Background(), upstream.FetchParams{
		InstitutionID: "I103163165",
		ConceptID:     "C41008148",
		YearFrom:      2019,
		YearTo:        2024,
		MaxRecords:    10,
	})
	require.NoError(t, err)

	require.Len(t, gotQuery["filter"], 1)
	assert.Equal(t,
		"institutions.id:I103163165,concepts.id:C41008148,publication_year:2019-2024",
		gotQuery["filter"][0])
	assert.Equal(t, []string{"50"}, gotQuery["per_page"])
	assert.Equal(t, []string{"team@example.org"}, gotQuery["mailto"])
}

func TestFetchAllErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad filter", http.StatusForbidden)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, Config{})

	_, err := c.FetchAll(context.Background(), upstream.FetchParams{MaxRecords: 10})
	require.Error(t, err)

	var apiErr *domain.ExternalAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "OpenAlex", apiErr.Source)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name   string
		params upstream.FetchParams
		want   []string
	}{
		{
			name:   "no filters",
			params: upstream.FetchParams{},
			want:   nil,
		},
		{
			name:   "institution only",
			params: upstream.FetchParams{InstitutionID: "I1"},
			want:   []string{"institutions.id:I1"},
		},
		{
			name:   "year range",
			params: upstream.FetchParams{YearFrom: 2019, YearTo: 2024},
			want:   []string{"publication_year:2019-2024"},
		},
		{
			name:   "open-ended from",
			params: upstream.FetchParams{YearFrom: 2019},
			want:   []string{"publication_year:>2018"},
		},
		{
			name:   "open-ended to",
			params: upstream.FetchParams{YearTo: 2024},
			want:   []string{"publication_year:<2025"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilters(tt.params))
		})
	}
}

func TestWorkToRaw(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		work := makeWork(7)
		raw := workToRaw(&work)

		assert.Equal(t, "W7", raw.ID)
		assert.Equal(t, "Work 7", raw.Title)
		assert.Equal(t, 2020, raw.Year)
		assert.Equal(t, 7, raw.CitationCount)
		require.Len(t, raw.Authors, 1)
		assert.Equal(t, "A7", raw.Authors[0].ID)
		assert.Equal(t, "Author 7", raw.Authors[0].Name)
		assert.Equal(t, []string{"W1"}, raw.ReferenceIDs)
	})

	t.Run("falls back to display name", func(t *testing.T) {
		work := Work{ID: "W1", DisplayName: "Display Only"}
		raw := workToRaw(&work)

		assert.Equal(t, "Display Only", raw.Title)
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, DefaultBurstSize, cfg.BurstSize)
	assert.Equal(t, DefaultPerPage, cfg.PerPage)
	assert.Equal(t, DefaultMaxRecords, cfg.MaxRecords)

	capped := Config{PerPage: 500}
	capped.applyDefaults()
	assert.Equal(t, 200, capped.PerPage)
}

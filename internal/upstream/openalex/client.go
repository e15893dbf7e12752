package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarnet/research-network-service/internal/domain"
	"github.com/scholarnet/research-network-service/internal/ingest"
	"github.com/scholarnet/research-network-service/internal/upstream"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// OpenAlex polite pool (with email) allows 10 req/sec.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the default page size. OpenAlex allows up to 200.
	DefaultPerPage = 50

	// DefaultMaxRecords is the default cap on works fetched per run.
	DefaultMaxRecords = 200
)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool. Providing one grants
	// access to higher rate limits.
	// See: https://docs.openalex.org/how-to-use-the-api/rate-limits-and-authentication
	Email string

	// Timeout is the request timeout. Defaults to 30 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second. Defaults to 10.
	RateLimit float64

	// BurstSize is the maximum burst of requests. Defaults to 10.
	BurstSize int

	// PerPage is the page size for listing requests. Defaults to 50,
	// maximum 200 per the OpenAlex API.
	PerPage int

	// MaxRecords caps the total works fetched per run. Defaults to 200.
	MaxRecords int
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
	if c.PerPage > 200 {
		c.PerPage = 200
	}
	if c.MaxRecords == 0 {
		c.MaxRecords = DefaultMaxRecords
	}
}

// Client fetches work metadata from OpenAlex.
type Client struct {
	config     Config
	httpClient *upstream.HTTPClient
	logger     zerolog.Logger
}

// Ensure Client implements the CatalogSource interface.
var _ upstream.CatalogSource = (*Client)(nil)

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config, logger zerolog.Logger) *Client {
	cfg.applyDefaults()

	httpClient := upstream.NewHTTPClient(upstream.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "ResearchNetworkService/1.0 (mailto:" + cfg.Email + ")",
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "openalex").Logger(),
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *upstream.HTTPClient, logger zerolog.Logger) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "openalex").Logger(),
	}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return "OpenAlex"
}

// FetchAll pages through the works listing until MaxRecords works are
// collected or the catalog runs out of results.
func (c *Client) FetchAll(ctx context.Context, params upstream.FetchParams) (*upstream.FetchResult, error) {
	maxRecords := params.MaxRecords
	if maxRecords == 0 {
		maxRecords = c.config.MaxRecords
	}

	result := &upstream.FetchResult{}

	for page := 1; len(result.Records) < maxRecords; page++ {
		listURL, err := c.buildListURL(params, page)
		if err != nil {
			return nil, fmt.Errorf("building list URL: %w", err)
		}

		resp, err := c.fetchPage(ctx, listURL)
		if err != nil {
			return nil, err
		}
		result.Pages++
		result.TotalAvailable = resp.Meta.Count

		if len(resp.Results) == 0 {
			break
		}

		for i := range resp.Results {
			result.Records = append(result.Records, workToRaw(&resp.Results[i]))
			if len(result.Records) >= maxRecords {
				break
			}
		}

		c.logger.Debug().
			Int("page", page).
			Int("page_results", len(resp.Results)).
			Int("collected", len(result.Records)).
			Msg("fetched works page")
	}

	return result, nil
}

// fetchPage performs one listing request and decodes the response.
func (c *Client) fetchPage(ctx context.Context, listURL string) (*ListResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, domain.NewExternalAPIError(
			"OpenAlex",
			resp.StatusCode,
			string(body),
			nil,
		)
	}

	// Limit body to 10MB to prevent resource exhaustion.
	var listResp ListResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &listResp, nil
}

// buildListURL constructs the works listing URL with filter and pagination
// parameters.
func (c *Client) buildListURL(params upstream.FetchParams, page int) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = "/works"

	query := url.Values{}

	if filters := buildFilters(params); len(filters) > 0 {
		query.Set("filter", strings.Join(filters, ","))
	}

	query.Set("per_page", strconv.Itoa(c.config.PerPage))
	query.Set("page", strconv.Itoa(page))

	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

// buildFilters constructs the OpenAlex filter string components.
func buildFilters(params upstream.FetchParams) []string {
	var filters []string

	if params.InstitutionID != "" {
		filters = append(filters, "institutions.id:"+params.InstitutionID)
	}
	if params.ConceptID != "" {
		filters = append(filters, "concepts.id:"+params.ConceptID)
	}

	switch {
	case params.YearFrom != 0 && params.YearTo != 0:
		filters = append(filters, fmt.Sprintf("publication_year:%d-%d", params.YearFrom, params.YearTo))
	case params.YearFrom != 0:
		filters = append(filters, fmt.Sprintf("publication_year:>%d", params.YearFrom-1))
	case params.YearTo != 0:
		filters = append(filters, fmt.Sprintf("publication_year:<%d", params.YearTo+1))
	}

	return filters
}

// workToRaw converts an OpenAlex work to a raw ingest record. Validation
// happens later at ingestion; this only reshapes fields.
func workToRaw(work *Work) ingest.RawRecord {
	title := work.Title
	if title == "" {
		title = work.DisplayName
	}

	authors := make([]ingest.RawAuthor, 0, len(work.Authorships))
	for _, as := range work.Authorships {
		authors = append(authors, ingest.RawAuthor{
			ID:   as.Author.ID,
			Name: as.Author.DisplayName,
		})
	}

	return ingest.RawRecord{
		ID:            work.ID,
		Title:         title,
		Year:          work.PublicationYear,
		CitationCount: work.CitedByCount,
		Authors:       authors,
		ReferenceIDs:  work.ReferencedWorks,
	}
}

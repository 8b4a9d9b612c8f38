package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/constants"
)

// Client is the TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: constants.APIConfig.TMDBTimeout,
		},
		logger: logger,
	}
}

// SearchMovies queries the title-search endpoint. Adult content is excluded
// and only the first page is fetched; resolution never needs more.
func (c *Client) SearchMovies(ctx context.Context, query, language string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	if language != "" {
		params.Set("language", language)
	}

	var result SearchResponse
	if err := c.doGet(ctx, "/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieDetails fetches extended detail for one movie, with credits, videos and
// similar titles appended in the same call.
func (c *Client) MovieDetails(ctx context.Context, id int, language string) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar")
	if language != "" {
		params.Set("language", language)
	}

	var result MovieDetails
	if err := c.doGet(ctx, fmt.Sprintf("/movie/%d", id), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WatchProviders fetches the region-keyed availability map for one movie.
func (c *Client) WatchProviders(ctx context.Context, id int) (*ProvidersResponse, error) {
	var result ProvidersResponse
	if err := c.doGet(ctx, fmt.Sprintf("/movie/%d/watch/providers", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, dest any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("TMDB request", zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("TMDB returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}

	return nil
}

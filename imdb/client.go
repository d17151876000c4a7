package imdb

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lepinkainen/cinegraph/internal/cache"
	"github.com/lepinkainen/cinegraph/internal/config"
	"github.com/lepinkainen/cinegraph/internal/errors"
	"github.com/lepinkainen/cinegraph/internal/ratelimit"
)

const (
	defaultGraphQLEndpoint = "https://api.graphql.imdb.com/"
	defaultSuggestBaseURL  = "https://v3.sg.media-imdb.com"
)

// Client talks to the IMDb GraphQL endpoint and the title suggestion
// endpoint. One client can back any number of entities; the rate
// limiters are shared per host across all clients in the process.
type Client struct {
	settings       config.Settings
	httpClient     *http.Client
	gqlLimiter     *ratelimit.Limiter
	suggestLimiter *ratelimit.Limiter
	endpoint       string
	suggestBase    string
	// noCache bypasses the sqlite response cache; used by tests that
	// count requests against a stub server.
	noCache bool
}

// New creates a client with the given settings snapshot.
func New(settings config.Settings) *Client {
	return &Client{
		settings:       settings,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		gqlLimiter:     ratelimit.For("imdb-graphql", 2),
		suggestLimiter: ratelimit.For("imdb-suggest", 4),
		endpoint:       defaultGraphQLEndpoint,
		suggestBase:    defaultSuggestBaseURL,
	}
}

// graphQLRequest is the wire envelope for one GraphQL call
type graphQLRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

// graphQLResponse is the wire envelope of the server's reply
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

var emptyData = json.RawMessage(`{}`)

func isEmptyData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("null"))
}

// query runs one GraphQL operation and returns the decoded `data`
// object. Responses are cached in the gql_cache table under
// "gql.<operation>.<sha256 of variables>"; empty results (upstream
// unavailable) are cached with the short negative TTL so a transient
// outage does not pin empty data for a full day.
func (c *Client) query(ctx context.Context, operation, doc string, variables map[string]any) (json.RawMessage, error) {
	return c.queryIn(ctx, "gql_cache", operation, doc, variables)
}

// queryIn is query with an explicit cache table; search operations use
// search_cache so they can be invalidated separately from entity data.
func (c *Client) queryIn(ctx context.Context, table, operation, doc string, variables map[string]any) (json.RawMessage, error) {
	if c.noCache {
		return c.post(ctx, operation, doc, variables)
	}

	data, _, err := cache.GetOrFetchWithTTL(table, gqlCacheKey(operation, variables),
		func() (json.RawMessage, error) {
			return c.post(ctx, operation, doc, variables)
		},
		cache.SelectNegativeCacheTTL(isEmptyData))
	return data, err
}

func gqlCacheKey(operation string, variables map[string]any) string {
	// Map keys marshal in sorted order, so the hash is stable.
	vars, _ := json.Marshal(variables)
	return fmt.Sprintf("gql.%s.%x", operation, sha256.Sum256(vars))
}

// post performs the actual HTTP round trip. A non-200 status is not an
// error: it yields an empty data object, and every normalizer downstream
// degrades to its documented default. Only transport failures and
// unparseable bodies surface as errors.
func (c *Client) post(ctx context.Context, operation, doc string, variables map[string]any) (json.RawMessage, error) {
	if err := c.gqlLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	body, err := json.Marshal(graphQLRequest{
		OperationName: operation,
		Query:         doc,
		Variables:     variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.settings.Language != "" {
		req.Header.Set("Accept-Language", c.settings.Language)
	}

	slog.Debug("GraphQL request", "operation", operation)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		cause := error(errors.NewUpstreamError(resp.StatusCode))
		if resp.StatusCode == http.StatusTooManyRequests {
			cause = errors.NewRateLimitErrorWithRetry("graphql endpoint rate limited", retryAfter(resp))
		}
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(respBody) > 0 {
			slog.Warn("GraphQL request failed", "operation", operation, "error", cause, "body", truncateForLog(respBody))
		} else {
			slog.Warn("GraphQL request failed", "operation", operation, "error", cause)
		}
		return emptyData, nil
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response for %s: %w", operation, err)
	}

	if len(envelope.Errors) > 0 {
		// IMDb returns partial data alongside errors for restricted
		// fields; log and keep whatever data arrived.
		slog.Debug("GraphQL response carried errors", "operation", operation, "first_error", envelope.Errors[0].Message)
	}

	if isEmptyData(envelope.Data) {
		return emptyData, nil
	}
	return envelope.Data, nil
}

// retryAfter parses a Retry-After header given in seconds. The HTTP-date
// form is not something this endpoint emits.
func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncateForLog(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

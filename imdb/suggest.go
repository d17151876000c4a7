package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lepinkainen/cinegraph/internal/cache"
	"github.com/lepinkainen/cinegraph/internal/errors"
)

// suggestResponse is the wire shape of the suggestion endpoint.
type suggestResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Label string `json:"l"`
		Year  int    `json:"y"`
		Kind  string `json:"qid"`
		Stars string `json:"s"`
		Image *struct {
			URL    string `json:"imageUrl"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"i"`
	} `json:"d"`
}

// SearchTitle searches titles through the suggestion endpoint, the same
// service the imdb.com search box uses. It is much faster than a
// GraphQL search and good enough for interactive lookup. A blank term
// returns an empty list without touching the network.
func (c *Client) SearchTitle(ctx context.Context, term string) ([]TitleSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	raw, err := c.suggest(ctx, term)
	if err != nil {
		return nil, err
	}

	var envelope suggestResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode suggestion response: %w", err)
	}

	limit := c.settings.TitleSearchLimit
	if limit <= 0 {
		limit = 10
	}

	thumb := c.settings.PosterThumb
	var results []TitleSearchResult
	for _, entry := range envelope.Data {
		// The endpoint mixes names and videos into title lookups.
		if !strings.HasPrefix(entry.ID, "tt") {
			continue
		}
		result := TitleSearchResult{
			ID:    trimRefID(entry.ID),
			Title: entry.Label,
			Year:  entry.Year,
			Kind:  entry.Kind,
			Cast:  entry.Stars,
		}
		if entry.Image != nil && entry.Image.URL != "" {
			img := Image{URL: entry.Image.URL, Width: entry.Image.Width, Height: entry.Image.Height}
			result.Thumbnail = img.ThumbnailURL(thumb.Width, thumb.Height)
		}
		results = append(results, result)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// suggest fetches one suggestion document, through suggest_cache unless
// caching is disabled.
func (c *Client) suggest(ctx context.Context, term string) (json.RawMessage, error) {
	if c.noCache {
		return c.fetchSuggestion(ctx, term)
	}

	key := "suggest." + strings.ToLower(term)
	data, _, err := cache.GetOrFetchWithTTL("suggest_cache", key,
		func() (json.RawMessage, error) {
			return c.fetchSuggestion(ctx, term)
		},
		cache.SelectNegativeCacheTTL(isEmptyData))
	return data, err
}

// fetchSuggestion performs the HTTP round trip. The endpoint shards by
// the first character of the query term. Like the GraphQL transport, a
// non-200 status degrades to an empty document rather than an error.
func (c *Client) fetchSuggestion(ctx context.Context, term string) (json.RawMessage, error) {
	if err := c.suggestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	// Shard on the first rune, not the first byte; "Élite" must not
	// split a multibyte character into an invalid path segment.
	shard := strings.ToLower(string([]rune(term)[0]))
	endpoint := fmt.Sprintf("%s/suggestion/%s/%s.json", c.suggestBase, url.PathEscape(shard), url.PathEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("Suggestion request", "term", term)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Suggestion request failed", "term", term, "error", errors.NewUpstreamError(resp.StatusCode))
		return emptyData, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) == 0 {
		return emptyData, nil
	}
	return body, nil
}

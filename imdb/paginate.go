package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/cinegraph/internal/errors"
)

// pageSize is the connection page size requested from the server.
// IMDb caps connections at 250 nodes per page.
const pageSize = 250

// defaultMaxPages bounds the pagination walker when the settings carry
// no explicit cap. The upstream contract only guarantees termination
// via hasNextPage, so a misbehaving server could otherwise loop forever.
const defaultMaxPages = 200

type pageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type connectionPage struct {
	Edges []struct {
		Node json.RawMessage `json:"node"`
	} `json:"edges"`
	PageInfo *pageInfo `json:"pageInfo"`
}

// fetchAll walks a paginated GraphQL connection to completion and
// returns every node in server order, no dedup, no reordering.
//
// entity is "title" or "name", id the prefixed identifier. fieldPath
// addresses the connection under the entity; a dotted path ("episodes.
// episodes") descends through intermediate objects, with only the
// innermost field taking the pagination arguments. filter is an extra
// argument fragment spliced into the connection call, e.g.
// `, filter: {categories: ["cast"]}`.
//
// The walk stops early after maxPages pages; that cap is a deliberate
// deviation from trusting hasNextPage alone.
func (c *Client) fetchAll(ctx context.Context, entity, id, operation, fieldPath, nodeFields, filter string) ([]json.RawMessage, error) {
	doc := buildConnectionQuery(entity, operation, fieldPath, nodeFields, filter)

	maxPages := c.settings.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var nodes []json.RawMessage
	var after *string

	for page := 1; ; page++ {
		variables := map[string]any{"id": id}
		if after != nil {
			variables["after"] = *after
		}

		data, err := c.query(ctx, operation, doc, variables)
		if err != nil {
			return nodes, err
		}

		if isEmptyData(data) {
			if page == 1 {
				// Nothing upstream (or upstream unavailable): empty result.
				return nil, nil
			}
			// Losing the connection mid-walk means the accumulated list
			// is silently incomplete; callers must see that.
			return nodes, fmt.Errorf("page %d: %w", page,
				errors.NewMalformedResponseError(operation, entity))
		}

		conn, err := digConnection(data, entity, fieldPath)
		if err != nil {
			if page == 1 {
				return nil, nil
			}
			return nodes, fmt.Errorf("page %d: %w", page,
				errors.NewMalformedResponseError(operation, fieldPath))
		}

		for _, edge := range conn.Edges {
			nodes = append(nodes, edge.Node)
		}

		if conn.PageInfo == nil {
			if page == 1 && len(conn.Edges) == 0 {
				return nil, nil
			}
			return nodes, fmt.Errorf("page %d: %w", page,
				errors.NewMalformedResponseError(operation, "pageInfo"))
		}
		if !conn.PageInfo.HasNextPage {
			return nodes, nil
		}
		if page >= maxPages {
			slog.Warn("Pagination page cap reached, returning partial result",
				"operation", operation, "pages", page, "nodes", len(nodes))
			return nodes, nil
		}
		if conn.PageInfo.EndCursor == nil {
			// hasNextPage with no cursor would refetch page 1 until the cap.
			return nodes, fmt.Errorf("page %d: %w", page,
				errors.NewMalformedResponseError(operation, "pageInfo.endCursor"))
		}
		after = conn.PageInfo.EndCursor
	}
}

// buildConnectionQuery assembles the paginated query document.
func buildConnectionQuery(entity, operation, fieldPath, nodeFields, filter string) string {
	parts := strings.Split(fieldPath, ".")
	inner := parts[len(parts)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "query %s($id: ID!, $after: ID) {\n", operation)
	fmt.Fprintf(&b, "  %s(id: $id) {\n", entity)
	for _, outer := range parts[:len(parts)-1] {
		fmt.Fprintf(&b, "    %s {\n", outer)
	}
	fmt.Fprintf(&b, "    %s(first: %d, after: $after%s) {\n", inner, pageSize, filter)
	fmt.Fprintf(&b, "      edges {\n        node {\n%s\n        }\n      }\n", nodeFields)
	b.WriteString("      pageInfo {\n        endCursor\n        hasNextPage\n      }\n    }\n")
	for range parts[:len(parts)-1] {
		b.WriteString("    }\n")
	}
	b.WriteString("  }\n}")
	return b.String()
}

// digConnection walks data[entity][path...] down to the connection page.
func digConnection(data json.RawMessage, entity, fieldPath string) (*connectionPage, error) {
	current := data
	for _, key := range append([]string{entity}, strings.Split(fieldPath, ".")...) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		next, ok := obj[key]
		if !ok || isEmptyData(next) {
			return nil, fmt.Errorf("field %s missing", key)
		}
		current = next
	}

	var conn connectionPage
	if err := json.Unmarshal(current, &conn); err != nil {
		return nil, fmt.Errorf("connection %s: %w", fieldPath, err)
	}
	return &conn, nil
}

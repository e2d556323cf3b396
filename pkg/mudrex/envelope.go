package mudrex

import (
	"context"
	"net/url"
	"strconv"
)

// Every endpoint may return its payload directly or wrapped one level
// under "data"; list payloads may further nest under "items" or "data".
// These helpers apply that tolerance uniformly.

// payloadOf unwraps a single-object response.
func payloadOf(resp any) map[string]any {
	m, ok := resp.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return inner
	}
	return m
}

// itemsOf unwraps a list-bearing response into its item maps.
func itemsOf(resp any) []map[string]any {
	body := resp
	if m, ok := resp.(map[string]any); ok {
		if inner, ok := m["data"]; ok {
			body = inner
		}
	}

	var raw []any
	switch v := body.(type) {
	case []any:
		raw = v
	case map[string]any:
		if list, ok := v["items"].([]any); ok {
			raw = list
		} else if list, ok := v["data"].([]any); ok {
			raw = list
		}
	}

	items := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		if m, ok := it.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// successOf reads the conventional success flag; bodies without one count
// as successful since the transport already rejected error statuses.
func successOf(resp any) bool {
	if m, ok := resp.(map[string]any); ok {
		if s, ok := m["success"].(bool); ok {
			return s
		}
	}
	return true
}

// drainOffsetPages exhausts an offset/limit-paged endpoint. Pages are
// fetched sequentially; a short page ends the loop, an empty page ends it
// immediately, and a positive maxItems truncates the result to exactly that many
// items. Transport failures propagate with no partial result.
func drainOffsetPages[T any](ctx context.Context, t Transport, path string, base url.Values, pageSize, maxItems int, decode func(map[string]any) T) ([]T, error) {
	var out []T
	offset := 0
	for {
		query := url.Values{}
		for k, vs := range base {
			query[k] = vs
		}
		query.Set("offset", strconv.Itoa(offset))
		query.Set("limit", strconv.Itoa(pageSize))

		resp, err := t.Get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		items := itemsOf(resp)
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			out = append(out, decode(item))
		}
		if maxItems > 0 && len(out) >= maxItems {
			return out[:maxItems], nil
		}
		if len(items) < pageSize {
			break
		}
		offset += pageSize
	}
	return out, nil
}

// drainNumberedPages exhausts a page/per_page-paged endpoint with the same
// termination rules as drainOffsetPages.
func drainNumberedPages[T any](ctx context.Context, t Transport, path string, pageSize, maxItems int, decode func(map[string]any) T) ([]T, error) {
	var out []T
	page := 1
	for {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(pageSize))

		resp, err := t.Get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		items := itemsOf(resp)
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			out = append(out, decode(item))
		}
		if maxItems > 0 && len(out) >= maxItems {
			return out[:maxItems], nil
		}
		if len(items) < pageSize {
			break
		}
		page++
	}
	return out, nil
}

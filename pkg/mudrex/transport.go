package mudrex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Transport issues authenticated requests and returns the decoded JSON
// body. Bodies may be objects or bare arrays, so the result is untyped;
// envelope helpers unwrap it. Implementations translate remote error
// payloads into *APIError before returning.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
	Patch(ctx context.Context, path string, body any) (any, error)
	Delete(ctx context.Context, path string) (any, error)
}

type httpTransport struct {
	baseURL    string
	apiSecret  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func newHTTPTransport(baseURL, apiSecret string, client *http.Client, limiter *rate.Limiter, logger *logrus.Logger) *httpTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpTransport{
		baseURL:    baseURL,
		apiSecret:  apiSecret,
		httpClient: client,
		limiter:    limiter,
		logger:     logger,
	}
}

func (t *httpTransport) Get(ctx context.Context, path string, query url.Values) (any, error) {
	return t.do(ctx, http.MethodGet, path, query, nil)
}

func (t *httpTransport) Post(ctx context.Context, path string, body any) (any, error) {
	return t.do(ctx, http.MethodPost, path, nil, body)
}

func (t *httpTransport) Patch(ctx context.Context, path string, body any) (any, error) {
	return t.do(ctx, http.MethodPatch, path, nil, body)
}

func (t *httpTransport) Delete(ctx context.Context, path string) (any, error) {
	return t.do(ctx, http.MethodDelete, path, nil, nil)
}

func (t *httpTransport) do(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Authorization", t.apiSecret)
	req.Header.Set("Content-Type", "application/json")

	t.logger.WithFields(logrus.Fields{"method": method, "path": path}).Debug("API request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	decoded, decodeErr := decodeJSON(resp.Body)

	if m, ok := decoded.(map[string]any); ok {
		if apiErr := classifyResponse(m, resp.StatusCode); apiErr != nil {
			t.applyRetryAfter(apiErr, resp)
			return nil, apiErr
		}
	} else if resp.StatusCode >= 400 {
		apiErr := classifyResponse(map[string]any{}, resp.StatusCode)
		t.applyRetryAfter(apiErr, resp)
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decoding %s %s response: %w", method, path, decodeErr)
	}
	return decoded, nil
}

func (t *httpTransport) applyRetryAfter(apiErr *APIError, resp *http.Response) {
	if apiErr.Kind != KindRateLimit || apiErr.RetryAfter != 0 {
		return
	}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.ParseFloat(ra, 64); err == nil {
			apiErr.RetryAfter = time.Duration(secs * float64(time.Second))
		}
	}
}

// decodeJSON decodes with UseNumber so decimal strings on the wire keep
// their exact representation through the untyped layer.
func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

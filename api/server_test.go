package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mudrex/mudrex-go/pkg/mudrex"
	"github.com/mudrex/mudrex-go/pkg/tools"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTransport struct{ resp any }

func (s *staticTransport) Get(ctx context.Context, path string, query url.Values) (any, error) {
	return s.resp, nil
}
func (s *staticTransport) Post(ctx context.Context, path string, body any) (any, error) {
	return s.resp, nil
}
func (s *staticTransport) Patch(ctx context.Context, path string, body any) (any, error) {
	return s.resp, nil
}
func (s *staticTransport) Delete(ctx context.Context, path string) (any, error) {
	return s.resp, nil
}

func newTestServer(resp any) *Server {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := mudrex.New("", mudrex.WithTransport(&staticTransport{resp: resp}), mudrex.WithLogger(logger))
	return NewServer(tools.NewRegistry(client), logger, "0")
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleListTools(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)
	rec := httptest.NewRecorder()
	s.handleListTools(rec, httptest.NewRequest(http.MethodGet, "/api/tools", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.NotEmpty(t, list)

	rec = httptest.NewRecorder()
	s.handleListTools(rec, httptest.NewRequest(http.MethodPost, "/api/tools", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleCallTool(t *testing.T) {
	t.Parallel()
	s := newTestServer(map[string]any{"data": map[string]any{"balance": "100", "locked_amount": "0"}})

	req := httptest.NewRequest(http.MethodPost, "/api/tools/call",
		strings.NewReader(`{"name": "get_futures_balance", "arguments": {}}`))
	rec := httptest.NewRecorder()
	s.handleCallTool(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var result tools.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.OK)
}

func TestHandleCallToolErrorsStayInEnvelope(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/call",
		strings.NewReader(`{"name": "no_such_tool"}`))
	rec := httptest.NewRecorder()
	s.handleCallTool(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "tool errors are payload, not HTTP errors")
	var result tools.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "not_found", result.Error.Kind)
}

func TestHandleCallToolBadJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/call", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.handleCallTool(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

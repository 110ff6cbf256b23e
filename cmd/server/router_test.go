package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pricofy/uroman-gateway/internal/domain"
	"github.com/pricofy/uroman-gateway/internal/engine/enginetest"
	"github.com/pricofy/uroman-gateway/internal/handler"
	"github.com/pricofy/uroman-gateway/internal/logging"
	"github.com/pricofy/uroman-gateway/internal/platform"
	"github.com/pricofy/uroman-gateway/internal/protocol"
)

func newTestRouter(t *testing.T, f *enginetest.Fake) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ops := handler.New(enginetest.Binding(f), logging.Discard())
	proto, err := protocol.New(ops, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	browser := platform.NewBrowser(platform.Services{
		Operations: ops,
		Protocol:   proto,
		Log:        logging.Discard(),
	}, platform.BrowserCodec{AllowedOrigin: "*"})

	return newRouter(browser, logging.Discard())
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{
			name:     "romanize",
			method:   http.MethodPost,
			path:     "/api/romanize",
			body:     `{"text":"Привет мир","lang_code":"rus"}`,
			status:   http.StatusOK,
			contains: `"romanized":"Privet mir"`,
		},
		{
			name:     "romanize batch",
			method:   http.MethodPost,
			path:     "/api/romanize",
			body:     `{"texts":["Hello","你好"]}`,
			status:   http.StatusOK,
			contains: `"count":2`,
		},
		{
			name:     "missing text",
			method:   http.MethodPost,
			path:     "/api/romanize",
			body:     `{"lang_code":"rus"}`,
			status:   http.StatusBadRequest,
			contains: `"code":"MISSING_INPUT"`,
		},
		{
			name:     "mcp",
			method:   http.MethodPost,
			path:     "/api/mcp",
			body:     `{"jsonrpc":"2.0","method":"tools/list","id":"a"}`,
			status:   http.StatusOK,
			contains: `"id":"a"`,
		},
		{
			name:     "mcp error keeps 200",
			method:   http.MethodPost,
			path:     "/api/mcp",
			body:     `{"jsonrpc":"2.0","method":"ping","id":1}`,
			status:   http.StatusOK,
			contains: `-32601`,
		},
		{
			name:     "info",
			method:   http.MethodGet,
			path:     "/api/info",
			status:   http.StatusOK,
			contains: `"service":"uroman"`,
		},
		{
			name:   "preflight",
			method: http.MethodOptions,
			path:   "/api/romanize",
			status: http.StatusNoContent,
		},
		{
			name:     "health",
			method:   http.MethodGet,
			path:     "/health",
			status:   http.StatusOK,
			contains: `"ok"`,
		},
	}

	router := newTestRouter(t, &enginetest.Fake{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.contains)
			}
			if tt.path != "/health" && rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Errorf("missing CORS header")
			}
		})
	}
}

func TestRouter_EngineFailure(t *testing.T) {
	router := newTestRouter(t, &enginetest.Fake{FailOn: map[string]bool{"Привет": true}})

	req := httptest.NewRequest(http.MethodPost, "/api/romanize", strings.NewReader(`{"text":"Привет"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	var body domain.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != domain.KindEngineFailure {
		t.Errorf("code = %s, want %s", body.Code, domain.KindEngineFailure)
	}
}

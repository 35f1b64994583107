package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqsearch/internal/domain"
	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
	cataloguc "github.com/kailas-cloud/faqsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/faqsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/faqsearch/internal/usecase/search"
)

const trustBody = "Trust badges show users that your site is safe to purchase from, increasing conversion."

// --- Mocks ---

type mockSource struct {
	mu   sync.Mutex
	docs []faq.Document
	err  error
}

func (m *mockSource) Load(_ context.Context) ([]faq.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs, m.err
}

func (m *mockSource) set(docs []faq.Document, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs, m.err = docs, err
}

func fixtureDocs() []faq.Document {
	return []faq.Document{
		faq.Reconstruct("1", "Trust badges", trustBody),
		faq.Reconstruct("2", "Returns", "Our return policy allows 30 days. Items must be unused."),
	}
}

type testEnv struct {
	source  *mockSource
	catalog *cataloguc.Service
	handler http.Handler
}

func newTestEnv(t *testing.T, load bool, apiKeys ...string) *testEnv {
	t.Helper()
	src := &mockSource{docs: fixtureDocs()}
	cat := cataloguc.New(src, zap.NewNop())
	if load {
		if err := cat.Load(context.Background()); err != nil {
			t.Fatalf("load catalog: %v", err)
		}
	}
	srv := NewServer(searchuc.New(cat), cat, healthuc.New(cat, nil), zap.NewNop())
	return &testEnv{
		source:  src,
		catalog: cat,
		handler: NewRouter(srv, RouterConfig{AdminAPIKeys: apiKeys}),
	}
}

func (e *testEnv) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error envelope: %v (body %q)", err, rr.Body.String())
	}
	return resp.Error
}

// --- Search ---

func TestSearch_TrustBadges(t *testing.T) {
	env := newTestEnv(t, true)

	rr := env.do(http.MethodPost, "/api/search", `{"query":"trust badges"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: %q", ct)
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	got := resp.Results[0]
	if got.ID != "1" || got.Title != "Trust badges" || got.Snippet != trustBody {
		t.Errorf("unexpected result: %+v", got)
	}
	if resp.Summary != trustBody {
		t.Errorf("summary: %q", resp.Summary)
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "1" {
		t.Errorf("sources: %v", resp.Sources)
	}
	if resp.Message != "" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	env := newTestEnv(t, true)

	rr := env.do(http.MethodPost, "/api/search", `{"query":"zzzqqq"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
	}

	want := `{"results":[],"message":"No matches found","summary":"","sources":[]}`
	if got := strings.TrimSpace(rr.Body.String()); got != want {
		t.Errorf("body:\n got %s\nwant %s", got, want)
	}
}

func TestSearch_LimitAndTrim(t *testing.T) {
	env := newTestEnv(t, true)

	// "s" occurs in both documents
	rr := env.do(http.MethodPost, "/api/search", `{"query":"   s  ","limit":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
	}
	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 || len(resp.Sources) != 1 {
		t.Errorf("expected exactly one result, got %d", len(resp.Results))
	}
}

func TestSearch_InvalidRequests(t *testing.T) {
	env := newTestEnv(t, true)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "malformed json", body: `{"query":`, message: "Invalid request"},
		{name: "query not a string", body: `{"query":42}`, message: "Invalid request"},
		{name: "missing query", body: `{}`, message: "Query must not be empty"},
		{name: "empty query", body: `{"query":""}`, message: "Query must not be empty"},
		{name: "whitespace query", body: `{"query":"   "}`, message: "Query must not be empty"},
		{name: "too long", body: `{"query":"` + strings.Repeat("a", 4097) + `"}`, message: "Query too long (max 4096 chars)"},
		{name: "negative limit", body: `{"query":"trust","limit":-1}`, message: "Limit must be positive"},
		{name: "limit over max", body: `{"query":"trust","limit":11}`, message: "Limit must not exceed 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/api/search", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("got %d, want 400", rr.Code)
			}
			e := decodeError(t, rr)
			if e.Code != "invalid_request" {
				t.Errorf("code: %q", e.Code)
			}
			if e.Message != tt.message {
				t.Errorf("message: got %q, want %q", e.Message, tt.message)
			}
		})
	}
}

func TestSearch_LimitOverrides(t *testing.T) {
	src := &mockSource{docs: fixtureDocs()}
	cat := cataloguc.New(src, nil)
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	srv := NewServer(searchuc.New(cat), cat, healthuc.New(cat, nil), zap.NewNop()).WithLimits(1, 2)
	h := NewRouter(srv, RouterConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"trust","limit":3}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
	if e := decodeError(t, rr); e.Message != "Limit must not exceed 2" {
		t.Errorf("message: %q", e.Message)
	}

	// default limit applies when the body omits it; "s" matches both documents
	req = httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"s"}`))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("expected default limit 1, got %d results", len(resp.Results))
	}
}

func TestSearch_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, true)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rr := env.do(method, "/api/search", "")
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: got %d, want 405", method, rr.Code)
			continue
		}
		if allow := rr.Header().Get("Allow"); allow != "POST" {
			t.Errorf("%s: Allow header %q", method, allow)
		}
		e := decodeError(t, rr)
		if e.Code != "method_not_allowed" || e.Message != "Method not allowed" {
			t.Errorf("%s: unexpected error %+v", method, e)
		}
	}
}

func TestSearch_CatalogNotLoaded(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(http.MethodPost, "/api/search", `{"query":"trust"}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != codeCatalogUnavailable {
		t.Errorf("code: %q", e.Code)
	}
}

// --- Health ---

func TestHealth(t *testing.T) {
	env := newTestEnv(t, true)
	rr := env.do(http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["catalog"] != "ok" {
		t.Errorf("unexpected health: %+v", resp)
	}
}

func TestHealth_CatalogNotLoaded(t *testing.T) {
	env := newTestEnv(t, false)
	rr := env.do(http.MethodGet, "/health", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	_ = env.do(http.MethodPost, "/api/search", `{"query":"trust"}`)

	rr := env.do(http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "faqsearch_http_requests_total") {
		t.Error("expected http request counter in metrics output")
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, true)
	rr := env.do(http.MethodGet, "/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != codeNotFound {
		t.Errorf("code: %q", e.Code)
	}
}

// --- Admin reload ---

func TestReload_RequiresAuth(t *testing.T) {
	env := newTestEnv(t, true, "secret")

	rr := env.do(http.MethodPost, "/admin/reload", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rr.Code)
	}

	// public routes stay open
	rr = env.do(http.MethodPost, "/api/search", `{"query":"trust"}`)
	if rr.Code != http.StatusOK {
		t.Errorf("search with auth configured: got %d", rr.Code)
	}
}

func TestReload_SwapsSnapshot(t *testing.T) {
	env := newTestEnv(t, true, "secret")
	env.source.set([]faq.Document{faq.Reconstruct("3", "Warranty", "Two year warranty.")}, nil)

	rr := env.do(http.MethodPost, "/admin/reload", "", "Authorization", "Bearer secret")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
	}
	var resp reloadResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Documents != 1 {
		t.Errorf("unexpected reload response: %+v", resp)
	}

	rr = env.do(http.MethodPost, "/api/search", `{"query":"warranty"}`)
	var sr searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sr.Sources) != 1 || sr.Sources[0] != "3" {
		t.Errorf("expected reloaded document, got %v", sr.Sources)
	}
}

func TestReload_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "source down", err: domain.ErrCatalogSourceUnavailable, wantCode: http.StatusServiceUnavailable, wantErr: codeCatalogUnavailable},
		{name: "bad catalog", err: domain.ErrInvalidCatalog, wantCode: http.StatusUnprocessableEntity, wantErr: codeInvalidCatalog},
		{name: "unknown", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: codeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, true)
			env.source.set(nil, tt.err)

			rr := env.do(http.MethodPost, "/admin/reload", "")
			if rr.Code != tt.wantCode {
				t.Fatalf("got %d, want %d", rr.Code, tt.wantCode)
			}
			if e := decodeError(t, rr); e.Code != tt.wantErr {
				t.Errorf("code: %q", e.Code)
			}

			// previous snapshot still served
			if docs, err := env.catalog.Documents(); err != nil || len(docs) != 2 {
				t.Errorf("expected previous snapshot, got %d docs, err=%v", len(docs), err)
			}
		})
	}
}

func TestReload_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, true)
	rr := env.do(http.MethodGet, "/admin/reload", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "POST" {
		t.Errorf("Allow header %q", allow)
	}
}

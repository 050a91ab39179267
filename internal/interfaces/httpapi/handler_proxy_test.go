package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/sportdata/internal/platform/logging"
)

func TestNewSearchProxy_ValidatesUpstream(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com/searchdata", "http://"} {
		if _, err := NewSearchProxy(SearchProxyConfig{UpstreamURL: raw}); err == nil {
			t.Fatalf("expected error for upstream %q", raw)
		}
	}
}

func TestSearchProxy_RelaysStatusAndBody(t *testing.T) {
	t.Parallel()

	var gotBody, gotForwarded, gotRequestID string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/searchdata" {
			t.Errorf("unexpected upstream request %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotForwarded = r.Header.Get("X-Forwarded-For")
		gotRequestID = r.Header.Get(requestIDHeader)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"message":"refreshing"}}`))
	}))
	defer upstream.Close()

	proxy, err := NewSearchProxy(SearchProxyConfig{UpstreamURL: upstream.URL + "/searchdata", Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new proxy: %v", err)
	}
	router := newTestRouter(&fakeSearch{}, proxy)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"sport":"football"}`))
	req.RemoteAddr = "198.51.100.4:4000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected relayed 202, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "5" {
		t.Fatalf("expected Retry-After to be relayed")
	}
	if !strings.Contains(rec.Body.String(), `"refreshing"`) {
		t.Fatalf("unexpected relayed body: %s", rec.Body.String())
	}
	if gotBody != `{"sport":"football"}` {
		t.Fatalf("unexpected forwarded body: %q", gotBody)
	}
	if gotForwarded != "198.51.100.4" || gotRequestID != "req-1" {
		t.Fatalf("unexpected forwarded headers: xff=%q request_id=%q", gotForwarded, gotRequestID)
	}
}

func TestSearchProxy_UpstreamDown(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	upstreamURL := upstream.URL
	upstream.Close()

	proxy, err := NewSearchProxy(SearchProxyConfig{UpstreamURL: upstreamURL, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new proxy: %v", err)
	}

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{}`)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSearchProxy_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	proxy, err := NewSearchProxy(SearchProxyConfig{UpstreamURL: "http://127.0.0.1:1/searchdata", Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new proxy: %v", err)
	}

	body := strings.NewReader(strings.Repeat("x", maxSearchBodyBytes+1))
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

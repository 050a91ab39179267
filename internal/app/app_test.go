package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/sportdata/internal/config"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
)

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sport := strings.ToLower(r.URL.Query().Get("SPORT"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"uri":"/players/list","statusCode":200,"statusMessage":"OK","body":{"players":[
			{"id":"%s-1","firstname":"Alex","lastname":"Morgan","position":"P1","age":27},
			{"id":"%s-2","firstname":"Blake","lastname":"Hayes","position":"P1","age":"31"}
		]}}`, sport, sport)
	}))
}

func memoryConfig(feedURL string) config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "sportdata-test",
		HTTPAddr:           "127.0.0.1:0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StoreDriver:        config.StoreDriverMemory,
		PlayerTTL:          time.Hour,
		CacheEnabled:       true,
		CacheTTL:           50 * time.Millisecond,
		FeedBaseURL:        feedURL,
		FeedTimeout:        2 * time.Second,
		FeedRetryBackoff:   10 * time.Millisecond,
		RefreshWorkers:     3,
		RefreshTimeout:     5 * time.Second,
		RetryAfter:         time.Second,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestNew_ServesRefreshThenResults(t *testing.T) {
	feed := newFeedServer(t)
	defer feed.Close()

	a, err := New(memoryConfig(feed.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	}()

	search := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/searchdata", strings.NewReader(`{"sport":"football","lastName":"m"}`))
		a.Server.Handler.ServeHTTP(rec, req)
		return rec
	}

	first := search()
	if first.Code != http.StatusAccepted {
		t.Fatalf("expected 202 on empty cache, got %d: %s", first.Code, first.Body.String())
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := search()
		if rec.Code == http.StatusOK {
			body := rec.Body.String()
			if !strings.Contains(body, `"id":"football-1"`) || strings.Contains(body, `"football-2"`) {
				t.Fatalf("unexpected search result: %s", body)
			}
			if !strings.Contains(body, `"name_brief":"A. Morgan"`) || !strings.Contains(body, `"average_position_age_diff":-2`) {
				t.Fatalf("expected enriched player, got %s", body)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("cache never became fresh, last status %d: %s", rec.Code, rec.Body.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestNew_ProxyRouteOnlyWhenConfigured(t *testing.T) {
	feed := newFeedServer(t)
	defer feed.Close()

	cfg := memoryConfig(feed.URL)
	cfg.SearchUpstreamURL = "ftp://bad.example.com"
	if _, err := New(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected invalid upstream url to fail wiring")
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer upstream.Close()

	cfg.SearchUpstreamURL = upstream.URL + "/searchdata"
	a, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer func() { _ = a.Shutdown(context.Background()) }()

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{}`)))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected relayed upstream status, got %d", rec.Code)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig("http://127.0.0.1:1")
	cfg.HTTPAddr = ""
	if _, err := New(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

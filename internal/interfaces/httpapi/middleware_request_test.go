package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/sportdata/internal/platform/logging"
)

type fixedIDs struct {
	id  string
	err error
}

func (f fixedIDs) NewID() (string, error) {
	return f.id, f.err
}

func TestRequestID_KeepsValidInboundID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})
	handler := RequestID(fixedIDs{id: "generated"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set(requestIDHeader, "caller-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "caller-42" || rec.Header().Get(requestIDHeader) != "caller-42" {
		t.Fatalf("expected inbound id to be kept, ctx=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})
	handler := RequestID(fixedIDs{id: "generated"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set(requestIDHeader, "bad id with spaces")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "generated" {
		t.Fatalf("expected generated id, got %q", seen)
	}
}

func TestRequestID_GeneratorFailureOmitsHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestID(fixedIDs{err: errors.New("entropy exhausted")}, next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := rec.Header().Get(requestIDHeader); got != "" {
		t.Fatalf("expected no request id header, got %q", got)
	}
}

func TestRequestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONWriter(&buf, logging.LevelInfo, "sportdata")
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodPost, "/searchdata", nil)
	req.RemoteAddr = "198.51.100.4:4000"
	RequestLogging(logger, next).ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	if !strings.Contains(line, `"status":202`) || !strings.Contains(line, `"client_ip":"198.51.100.4"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}

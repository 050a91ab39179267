package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"github.com/riskibarqy/sportdata/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxProxyResponseBytes = 8 << 20

// SearchProxyConfig describes the remote /searchdata endpoint the proxy fronts.
type SearchProxyConfig struct {
	UpstreamURL string
	Timeout     time.Duration
	Logger      *logging.Logger
	HTTPClient  *http.Client
}

// SearchProxy forwards POST /search bodies to another instance's data
// endpoint and relays the answer unchanged.
type SearchProxy struct {
	upstream string
	client   *http.Client
	logger   *logging.Logger
}

func NewSearchProxy(cfg SearchProxyConfig) (*SearchProxy, error) {
	upstream, err := normalizeUpstreamURL(cfg.UpstreamURL)
	if err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &SearchProxy{
		upstream: upstream,
		client:   client,
		logger:   logger.Named("search-proxy"),
	}, nil
}

func normalizeUpstreamURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", crerr.New("search upstream url is required")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", crerr.Wrap(err, "parse search upstream url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("search upstream url must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.New("search upstream url host is required")
	}
	return parsed.String(), nil
}

func (p *SearchProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.SearchProxy.ServeHTTP")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(r.Body, maxSearchBodyBytes+1)); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if buf.Len() > maxSearchBodyBytes {
		writeError(ctx, w, fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxSearchBodyBytes))
		return
	}

	resp, err := p.forward(ctx, r, buf.B)
	if err != nil {
		p.logger.WarnContext(ctx, "search upstream failed", "upstream", p.upstream, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: search upstream unavailable", usecase.ErrDependencyUnavailable))
		return
	}
	defer resp.Body.Close()

	for _, header := range []string{"Content-Type", "Retry-After"} {
		if v := resp.Header.Get(header); v != "" {
			w.Header().Set(header, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, io.LimitReader(resp.Body, maxProxyResponseBytes)); err != nil {
		p.logger.WarnContext(ctx, "relay search response failed", "error", err)
	}
}

func (p *SearchProxy) forward(ctx context.Context, inbound *http.Request, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.upstream, bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if forwarded := appendForwardedFor(inbound); forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	if requestID := requestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "call search upstream")
	}
	return resp, nil
}

package cbssports

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"github.com/riskibarqy/sportdata/internal/platform/resilience"
	"github.com/riskibarqy/sportdata/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL      = "https://api.cbssports.com/fantasy/players/list"
	defaultAPIVersion   = "3.0"
	defaultTimeout      = 20 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBodySize = 32 << 20
)

var errFeedTransient = crerr.New("cbssports transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches full rosters from the CBS Sports fantasy players list.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("cbssports")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "sportdata",
			MaxResponseBodySize: maxResponseBodySize,
			ReadBufferSize:      16 << 10,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("feed circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      breaker,
	}
}

// FetchPlayers returns the normalized roster for sport. Records without an
// id are dropped; tagging with sport and import time is left to the caller.
func (c *Client) FetchPlayers(ctx context.Context, sport player.Sport) ([]player.Player, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, sport)
	}

	fullURL, err := c.playerListURL(sport)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = c.breaker.Execute(ctx, func(ctx context.Context) error {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil {
			return reqErr
		}
		raw = body
		return nil
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "feed circuit breaker rejected request", "sport", sport, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: player feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch %s players", sport)
	}

	var envelope playerListEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "decode %s player list", sport)
	}

	players := normalizePlayers(envelope.Body.Players)
	c.logger.DebugContext(ctx, "feed players fetched",
		"sport", sport,
		"received", len(envelope.Body.Players),
		"kept", len(players),
	)
	return players, nil
}

func (c *Client) playerListURL(sport player.Sport) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", crerr.Wrapf(err, "parse feed base url %q", c.baseURL)
	}
	query := parsed.Query()
	query.Set("version", defaultAPIVersion)
	query.Set("SPORT", sport.String())
	query.Set("response_format", "JSON")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, retryable, err := c.doOnce(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "feed request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string) ([]byte, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, true, crerr.Mark(crerr.Wrap(err, "send request"), errFeedTransient)
	}

	status := resp.StatusCode()
	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, true, crerr.Mark(crerr.Wrap(err, "read response body"), errFeedTransient)
	}
	if status >= 200 && status < 300 {
		return append([]byte(nil), body...), false, nil
	}

	statusErr := crerr.Newf("feed status=%d body=%s", status, abbreviateBody(body))
	if isRetryableStatus(status) {
		return nil, true, crerr.Mark(statusErr, errFeedTransient)
	}
	return nil, false, statusErr
}

// IsTransient reports whether err came from a retryable transport or status failure.
func IsTransient(err error) bool {
	return crerr.Is(err, errFeedTransient)
}

func normalizePlayers(items []feedPlayer) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(string(item.ID))
		if id == "" {
			continue
		}

		first := strings.TrimSpace(item.FirstName)
		last := strings.TrimSpace(item.LastName)
		if first == "" && last == "" {
			first, last = splitFullName(item.FullName)
		}

		out = append(out, player.Player{
			ID:        id,
			FirstName: first,
			LastName:  last,
			Position:  strings.TrimSpace(item.Position),
			Age:       int(item.Age),
		})
	}
	return out
}

func splitFullName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	first, last, found := strings.Cut(full, " ")
	if !found {
		return "", first
	}
	return first, strings.TrimSpace(last)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

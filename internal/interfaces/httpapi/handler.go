package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"github.com/riskibarqy/sportdata/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultRetryAfter  = 5 * time.Second
	maxSearchBodyBytes = 64 << 10
)

// SearchUseCase is the read side the handlers depend on.
type SearchUseCase interface {
	Search(ctx context.Context, criteria player.SearchCriteria) (usecase.SearchResult, error)
	GetPlayer(ctx context.Context, sport, id string) (player.Player, error)
}

type Handler struct {
	search     SearchUseCase
	logger     *logging.Logger
	validator  *validator.Validate
	retryAfter time.Duration
}

func NewHandler(search SearchUseCase, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		search:     search,
		logger:     logger.Named("httpapi"),
		validator:  validator.New(),
		retryAfter: defaultRetryAfter,
	}
}

// WithRetryAfter overrides the hint sent with 202 refreshing responses.
func (h *Handler) WithRetryAfter(d time.Duration) *Handler {
	if d > 0 {
		h.retryAfter = d
	}
	return h
}

type searchRequest struct {
	Sport    string `json:"sport" validate:"omitempty,oneof=baseball basketball football"`
	LastName string `json:"lastName" validate:"omitempty,max=100"`
	Position string `json:"position" validate:"omitempty,max=16"`
	Age      string `json:"age" validate:"omitempty,max=16"`
}

func (req *searchRequest) normalize() {
	req.Sport = strings.ToLower(strings.TrimSpace(req.Sport))
	req.LastName = strings.TrimSpace(req.LastName)
	req.Position = strings.TrimSpace(req.Position)
	req.Age = strings.TrimSpace(req.Age)
}

func (req searchRequest) criteria() player.SearchCriteria {
	return player.SearchCriteria{
		Sport:    req.Sport,
		LastName: req.LastName,
		Position: req.Position,
		Age:      req.Age,
	}
}

type playerDTO struct {
	ID                     string    `json:"id"`
	PartitionKey           string    `json:"partition_key"`
	Sport                  string    `json:"sport"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	Position               string    `json:"position"`
	Age                    int       `json:"age"`
	NameBrief              string    `json:"name_brief"`
	AveragePositionAgeDiff int       `json:"average_position_age_diff"`
	LastImported           time.Time `json:"last_imported"`
}

type playerListDTO struct {
	Players []playerDTO `json:"players"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:                     p.ID,
		PartitionKey:           p.PartitionKey,
		Sport:                  p.Sport.String(),
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		Position:               p.Position,
		Age:                    p.Age,
		NameBrief:              p.NameBrief,
		AveragePositionAgeDiff: p.AveragePositionAgeDiff,
		LastImported:           p.LastImported.UTC(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// SearchData serves POST /searchdata. An empty body means no criteria.
func (h *Handler) SearchData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchData")
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

	var req searchRequest
	if len(bytes.TrimSpace(buf.B)) > 0 {
		if err := sonic.Unmarshal(buf.B, &req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	h.serveSearch(ctx, w, req)
}

// ListPlayers serves GET /v1/players with the same criteria as query parameters.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	h.serveSearch(ctx, w, searchRequest{
		Sport:    query.Get("sport"),
		LastName: query.Get("last_name"),
		Position: query.Get("position"),
		Age:      query.Get("age"),
	})
}

func (h *Handler) serveSearch(ctx context.Context, w http.ResponseWriter, req searchRequest) {
	req.normalize()
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.search.Search(ctx, req.criteria())
	if err != nil {
		h.logger.ErrorContext(ctx, "search players failed",
			"sport", req.Sport,
			"request_id", requestIDFromContext(ctx),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}
	if result.Refreshing {
		writeRefreshing(ctx, w, h.retryAfter)
		return
	}

	items := make([]playerDTO, 0, len(result.Players))
	for _, p := range result.Players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, playerListDTO{Players: items})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	sport := r.PathValue("sport")
	playerID := r.PathValue("playerID")
	item, err := h.search.GetPlayer(ctx, sport, playerID)
	if err != nil {
		if !errors.Is(err, usecase.ErrNotFound) && !errors.Is(err, usecase.ErrInvalidInput) {
			h.logger.ErrorContext(ctx, "get player failed", "sport", sport, "player_id", playerID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

package handler

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roeliffah/freestay-live-sub000/internal/middleware"
	"github.com/roeliffah/freestay-live-sub000/internal/obs"
	"github.com/roeliffah/freestay-live-sub000/internal/ratelimit"
	"github.com/roeliffah/freestay-live-sub000/internal/search"
	"github.com/roeliffah/freestay-live-sub000/internal/search/cache"
	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// Handler handles HTTP requests.
type Handler struct {
	service     *search.Service
	cache       *cache.Cache
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *zap.Logger
}

// New creates a Handler.
func New(
	service *search.Service,
	searchCache *cache.Cache,
	rateLimiter *ratelimit.Limiter,
	metrics *obs.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		service:     service,
		cache:       searchCache,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// SearchEnvelope is the full /search response: the cascade result plus
// request statistics.
type SearchEnvelope struct {
	Stats  Stats                `json:"stats"`
	Result types.SearchResponse `json:"result"`
}

// Stats carries per-request serving statistics.
type Stats struct {
	Cache      string `json:"cache"`
	DurationMs int64  `json:"duration_ms"`
}

// SearchHandler handles POST /search with a JSON SearchRequest body.
// Valid requests always produce a 200: the fallback cascade guarantees
// a response even when the upstream is down.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.metrics.IncRequests()
	requestID := middleware.RequestID(r.Context())

	ip := ExtractIP(r)
	if !h.rateLimiter.Allow(ip) {
		h.logger.Warn("rate limit exceeded", zap.String("request_id", requestID), zap.String("ip", ip))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.Debug("invalid search request",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, hit := h.cache.GetOrFetch(r.Context(), cache.Key(req), func() *types.SearchResponse {
		return h.service.SearchHotels(r.Context(), req)
	})
	if resp == nil {
		// Only possible when the client went away mid-request.
		return
	}

	cacheStatus := "miss"
	if hit {
		cacheStatus = "hit"
		h.metrics.IncCacheHits()
	}

	writeJSON(w, http.StatusOK, SearchEnvelope{
		Stats: Stats{
			Cache:      cacheStatus,
			DurationMs: time.Since(start).Milliseconds(),
		},
		Result: *resp,
	}, h.logger)
}

// HotelDetailHandler handles GET /hotels/{id}.
func (h *Handler) HotelDetailHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	requestID := middleware.RequestID(r.Context())

	ip := ExtractIP(r)
	if !h.rateLimiter.Allow(ip) {
		h.logger.Warn("rate limit exceeded", zap.String("request_id", requestID), zap.String("ip", ip))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	hotelID := strings.TrimSpace(r.PathValue("id"))
	if hotelID == "" {
		writeError(w, http.StatusBadRequest, "hotel id is required")
		return
	}

	req, err := ParseDetailParams(r)
	if err != nil {
		h.logger.Debug("invalid detail request",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := h.service.HotelDetail(r.Context(), hotelID, *req)
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// ParseDetailParams builds a single-room SearchRequest from the detail
// page query parameters.
func ParseDetailParams(r *http.Request) (*types.SearchRequest, error) {
	query := r.URL.Query()

	adults := 2
	if v := query.Get("adults"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("adults must be a positive integer")
		}
		adults = n
	}

	children := 0
	if v := query.Get("children"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("children must be a non-negative integer")
		}
		children = n
	}

	req := &types.SearchRequest{
		CheckIn:     strings.TrimSpace(query.Get("checkin")),
		CheckOut:    strings.TrimSpace(query.Get("checkout")),
		Nationality: strings.TrimSpace(query.Get("nationality")),
		Currency:    strings.TrimSpace(query.Get("currency")),
		Language:    strings.TrimSpace(query.Get("language")),
		Rooms:       []types.Room{{Adults: adults, Children: children}},
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// ExtractIP extracts the client IP from the request, preferring
// X-Forwarded-For, then X-Real-IP, then RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status already written, nothing left to do but log.
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/roeliffah/freestay-live-sub000/internal/fixture"
	"github.com/roeliffah/freestay-live-sub000/internal/handler"
	"github.com/roeliffah/freestay-live-sub000/internal/obs"
	"github.com/roeliffah/freestay-live-sub000/internal/ratelimit"
	"github.com/roeliffah/freestay-live-sub000/internal/search"
	"github.com/roeliffah/freestay-live-sub000/internal/search/cache"
	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// downInventory simulates an unreachable upstream, so every request is
// served from fixtures.
type downInventory struct{}

func (downInventory) Search(ctx context.Context, req types.SearchRequest) ([]types.Hotel, error) {
	return nil, errors.New("upstream down")
}

func (downInventory) HotelOffers(ctx context.Context, hotelID string, req types.SearchRequest) (*types.Hotel, []types.RoomType, error) {
	return nil, nil, errors.New("upstream down")
}

func (downInventory) HotelStatic(ctx context.Context, hotelID string, req types.SearchRequest) (*types.Hotel, error) {
	return nil, errors.New("upstream down")
}

func newTestMux(t *testing.T, requestsPerMin int) (*http.ServeMux, *obs.Metrics) {
	t.Helper()
	fixtures, err := fixture.Load()
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	logger := zap.NewNop()
	metrics := obs.NewMetrics(logger)
	svc := search.NewService(downInventory{}, fixtures, metrics, logger)
	searchCache := cache.New(time.Minute)
	t.Cleanup(searchCache.Close)
	limiter := ratelimit.New(requestsPerMin, time.Minute)
	t.Cleanup(limiter.Close)

	h := handler.New(svc, searchCache, limiter, metrics, logger)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", h.SearchHandler)
	mux.HandleFunc("GET /hotels/{id}", h.HotelDetailHandler)
	return mux, metrics
}

func doSearch(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validSearchBody = `{
	"checkin": "2026-09-10",
	"checkout": "2026-09-14",
	"nationality": "DE",
	"destination": "Antalya",
	"rooms": [{"adults": 2}]
}`

func TestSearchHandler_ServesFixturesWhenUpstreamDown(t *testing.T) {
	mux, _ := newTestMux(t, 100)

	rec := doSearch(mux, validSearchBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected Content-Type %q", ct)
	}

	var env handler.SearchEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if env.Result.FromAPI {
		t.Error("expected fixture fallback with the upstream down")
	}
	if len(env.Result.Hotels) == 0 {
		t.Error("expected fixture hotels")
	}
	if env.Stats.Cache != "miss" {
		t.Errorf("first request should be a cache miss, got %q", env.Stats.Cache)
	}
}

func TestSearchHandler_SecondRequestHitsCache(t *testing.T) {
	mux, metrics := newTestMux(t, 100)

	doSearch(mux, validSearchBody)
	rec := doSearch(mux, validSearchBody)

	var env handler.SearchEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if env.Stats.Cache != "hit" {
		t.Errorf("expected cache hit, got %q", env.Stats.Cache)
	}
	if snap := metrics.Snapshot(); snap.CacheHits != 1 {
		t.Errorf("expected 1 cache hit recorded, got %d", snap.CacheHits)
	}
}

func TestSearchHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"invalid json", `{"checkin": `, "invalid JSON body"},
		{"bad checkin", `{"checkin":"nope","checkout":"2026-09-14","rooms":[{"adults":2}]}`, "checkin must be in YYYY-MM-DD format"},
		{"checkout before checkin", `{"checkin":"2026-09-14","checkout":"2026-09-10","rooms":[{"adults":2}]}`, "checkout must be after checkin"},
		{"no rooms", `{"checkin":"2026-09-10","checkout":"2026-09-14","rooms":[]}`, "at least one room is required"},
		{"no adults", `{"checkin":"2026-09-10","checkout":"2026-09-14","rooms":[{"adults":0}]}`, "adults must be at least 1"},
	}

	mux, _ := newTestMux(t, 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(mux, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if !strings.Contains(body["error"], tt.wantMsg) {
				t.Errorf("error %q does not mention %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestSearchHandler_RateLimit(t *testing.T) {
	mux, _ := newTestMux(t, 2)

	for i := 0; i < 2; i++ {
		if rec := doSearch(mux, validSearchBody); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	rec := doSearch(mux, validSearchBody)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestHotelDetailHandler_FallbackDetail(t *testing.T) {
	mux, _ := newTestMux(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/hotels/120021?checkin=2026-09-10&checkout=2026-09-14&adults=2", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp types.HotelDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.FromAPI {
		t.Error("expected fixture detail with the upstream down")
	}
	if resp.Hotel.HotelID != "120021" {
		t.Errorf("expected hotel 120021, got %s", resp.Hotel.HotelID)
	}
	if len(resp.RoomTypes) != 3 {
		t.Errorf("expected 3 synthesized offers, got %d", len(resp.RoomTypes))
	}
}

func TestHotelDetailHandler_BadParams(t *testing.T) {
	mux, _ := newTestMux(t, 100)

	tests := []struct {
		name string
		url  string
	}{
		{"missing dates", "/hotels/120021"},
		{"bad adults", "/hotels/120021?checkin=2026-09-10&checkout=2026-09-14&adults=zero"},
		{"zero adults", "/hotels/120021?checkin=2026-09-10&checkout=2026-09-14&adults=0"},
		{"negative children", "/hotels/120021?checkin=2026-09-10&checkout=2026-09-14&children=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req.RemoteAddr = "203.0.113.9:1234"
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestParseDetailParams_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/hotels/1?checkin=2026-09-10&checkout=2026-09-14", nil)
	got, err := handler.ParseDetailParams(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Adults != 2 || got.Rooms[0].Children != 0 {
		t.Errorf("unexpected default room: %+v", got.Rooms)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "198.51.100.1, 10.0.0.1", "", "127.0.0.1:80", "198.51.100.1"},
		{"real ip", "", "198.51.100.2", "127.0.0.1:80", "198.51.100.2"},
		{"remote addr", "", "", "198.51.100.3:4567", "198.51.100.3"},
		{"remote addr without port", "", "", "198.51.100.4", "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := handler.ExtractIP(req); got != tt.want {
				t.Errorf("ExtractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

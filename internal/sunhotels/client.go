// Package sunhotels implements the SOAP/XML client for the SunHotels
// inventory API: request construction, transport, and defensive
// normalization of its inconsistent response schema.
package sunhotels

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// Config holds the upstream endpoint and credentials.
type Config struct {
	BaseURL         string
	Username        string
	Password        string
	DefaultCurrency string
	Timeout         time.Duration
}

// Client talks to the SunHotels SOAP endpoint. It shields callers from
// the wire format but not from failures: transport and parse errors are
// returned as errors for the cascade layer to absorb.
type Client struct {
	http   *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	cfg    Config
	logger *zap.Logger
}

// New creates a Client for the configured upstream.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "EUR"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    "sunhotels",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout),
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		cfg:    cfg,
		logger: logger,
	}
}

// call POSTs a SOAP envelope and returns the raw response body.
// Non-2xx statuses are errors; the body is never parsed in that case.
func (c *Client) call(ctx context.Context, operation, envelope string) ([]byte, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "text/xml; charset=utf-8").
			SetHeader("SOAPAction", Namespace+operation).
			SetBody(envelope).
			Post("")
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("upstream returned status %d", r.StatusCode())
		}
		return r, nil
	})
	if err != nil {
		c.logger.Warn("sunhotels call failed",
			zap.String("operation", operation),
			zap.String("breaker", c.cb.State().String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("calling %s: %w", operation, err)
	}
	return resp.Body(), nil
}

// Search runs an availability search. Zero usable hotels is not an
// error; it returns an empty slice.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) ([]types.Hotel, error) {
	body, err := c.call(ctx, opSearch, searchEnvelope(c.cfg, req, ""))
	if err != nil {
		return nil, err
	}

	hotels, err := parseSearchResponse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	for i := range hotels {
		if hotels[i].Currency == "" {
			hotels[i].Currency = c.currencyFor(req)
		}
	}

	c.logger.Info("sunhotels search completed",
		zap.String("destination", req.Destination),
		zap.Int("count", len(hotels)),
	)
	return hotels, nil
}

// HotelOffers runs the pricing leg of a detail lookup: a search scoped
// to a single hotel, flattened into room/board offers. Both returns are
// nil when the upstream no longer prices the hotel.
func (c *Client) HotelOffers(ctx context.Context, hotelID string, req types.SearchRequest) (*types.Hotel, []types.RoomType, error) {
	body, err := c.call(ctx, opSearch, searchEnvelope(c.cfg, req, hotelID))
	if err != nil {
		return nil, nil, err
	}

	hotel, offers, err := parseHotelOffers(body)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing offers for hotel %s: %w", hotelID, err)
	}
	if hotel != nil && hotel.Currency == "" {
		hotel.Currency = c.currencyFor(req)
	}
	for i := range offers {
		if offers[i].Currency == "" {
			offers[i].Currency = c.currencyFor(req)
		}
	}
	return hotel, offers, nil
}

// HotelStatic fetches the static-content record for a hotel: name,
// description, facilities, images, address, coordinates, check-in/out
// times. Returns nil without error when the hotel is unknown upstream.
func (c *Client) HotelStatic(ctx context.Context, hotelID string, req types.SearchRequest) (*types.Hotel, error) {
	body, err := c.call(ctx, opStatic, staticEnvelope(c.cfg, hotelID, req.Language))
	if err != nil {
		return nil, err
	}

	hotel, err := parseStaticHotel(body, hotelID)
	if err != nil {
		return nil, fmt.Errorf("parsing static data for hotel %s: %w", hotelID, err)
	}
	return hotel, nil
}

func (c *Client) currencyFor(req types.SearchRequest) string {
	if req.Currency != "" {
		return req.Currency
	}
	return c.cfg.DefaultCurrency
}

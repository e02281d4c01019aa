// Package search implements the search and detail operations on top of
// the upstream inventory adapter, with a fixture fallback cascade that
// guarantees every call resolves to a value.
package search

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roeliffah/freestay-live-sub000/internal/fixture"
	"github.com/roeliffah/freestay-live-sub000/internal/obs"
	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// Inventory is the upstream hotel inventory adapter.
type Inventory interface {
	// Search runs an availability search. An empty slice without error
	// means the upstream answered but had nothing usable.
	Search(ctx context.Context, req types.SearchRequest) ([]types.Hotel, error)
	// HotelOffers prices a single hotel. Nil hotel means the upstream
	// no longer knows it.
	HotelOffers(ctx context.Context, hotelID string, req types.SearchRequest) (*types.Hotel, []types.RoomType, error)
	// HotelStatic fetches static content for a hotel, nil when absent.
	HotelStatic(ctx context.Context, hotelID string, req types.SearchRequest) (*types.Hotel, error)
}

// Service answers search and detail requests. It never returns errors:
// upstream failures are logged and absorbed by the fallback cascade.
type Service struct {
	inventory Inventory
	fixtures  *fixture.Store
	metrics   *obs.Metrics
	logger    *zap.Logger
}

// NewService creates a Service.
func NewService(inventory Inventory, fixtures *fixture.Store, metrics *obs.Metrics, logger *zap.Logger) *Service {
	return &Service{
		inventory: inventory,
		fixtures:  fixtures,
		metrics:   metrics,
		logger:    logger,
	}
}

// searchStrategy is one tier of the fallback cascade. It either
// produces a complete response or declines.
type searchStrategy func(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, bool)

// SearchHotels resolves a search request through the cascade: live
// upstream results, then fixtures filtered by destination, then the
// full fixture set. The final tier never declines.
func (s *Service) SearchHotels(ctx context.Context, req types.SearchRequest) *types.SearchResponse {
	strategies := []searchStrategy{
		s.tryLive,
		s.tryFixtureFiltered,
		s.tryFixtureAll,
	}
	for _, try := range strategies {
		if resp, ok := try(ctx, req); ok {
			return resp
		}
	}
	// Unreachable: tryFixtureAll always succeeds.
	return &types.SearchResponse{SearchID: uuid.NewString()}
}

func (s *Service) tryLive(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, bool) {
	hotels, err := s.inventory.Search(ctx, req)
	if err != nil {
		s.metrics.IncUpstreamErrors()
		s.logger.Warn("live search failed, falling back to fixtures",
			zap.String("destination", req.Destination),
			zap.Error(err),
		)
		return nil, false
	}
	if len(hotels) == 0 {
		s.logger.Info("live search returned no usable hotels",
			zap.String("destination", req.Destination),
		)
		return nil, false
	}

	return &types.SearchResponse{
		SearchID: uuid.NewString(),
		Total:    len(hotels),
		Hotels:   hotels,
		FromAPI:  true,
	}, true
}

func (s *Service) tryFixtureFiltered(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, bool) {
	matches := s.fixtures.Filter(req.Destination)
	if len(matches) == 0 {
		return nil, false
	}
	return s.fixtureResponse(matches), true
}

func (s *Service) tryFixtureAll(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, bool) {
	return s.fixtureResponse(s.fixtures.All()), true
}

func (s *Service) fixtureResponse(hotels []types.Hotel) *types.SearchResponse {
	s.metrics.IncFallbacks()
	hotels = fixture.Prepare(hotels)
	return &types.SearchResponse{
		SearchID: uuid.NewString(),
		Total:    len(hotels),
		Hotels:   hotels,
		FromAPI:  false,
	}
}

// HotelDetail resolves one hotel with its bookable offers. The static
// and pricing calls run sequentially; a failed static call does not
// block pricing. Any failure of the pipeline as a whole falls back to
// fixture data, which always succeeds.
func (s *Service) HotelDetail(ctx context.Context, hotelID string, req types.SearchRequest) *types.HotelDetailResponse {
	static, err := s.inventory.HotelStatic(ctx, hotelID, req)
	if err != nil {
		s.metrics.IncUpstreamErrors()
		s.logger.Warn("static data call failed, continuing with search data only",
			zap.String("hotel_id", hotelID),
			zap.Error(err),
		)
		static = nil
	}

	priced, offers, err := s.inventory.HotelOffers(ctx, hotelID, req)
	if err != nil {
		s.metrics.IncUpstreamErrors()
		s.logger.Warn("pricing call failed, falling back to fixture detail",
			zap.String("hotel_id", hotelID),
			zap.Error(err),
		)
		return s.fixtureDetail(hotelID)
	}
	if static == nil && priced == nil {
		s.logger.Info("hotel unknown upstream, falling back to fixture detail",
			zap.String("hotel_id", hotelID),
		)
		return s.fixtureDetail(hotelID)
	}

	return &types.HotelDetailResponse{
		Hotel:     mergeHotel(static, priced, hotelID),
		RoomTypes: offers,
		FromAPI:   true,
	}
}

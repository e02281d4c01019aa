package search

import (
	"math"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
	"github.com/roeliffah/freestay-live-sub000/internal/sunhotels"
)

// fallbackOffers are the offers synthesized for a fixture-backed detail
// page: multipliers over the fixture's base price, with fixed board
// plans and occupancy.
var fallbackOffers = []struct {
	id         string
	name       string
	boardID    string
	multiplier float64
	occupancy  int
	available  int
}{
	{"STD", "Standard Room", "2", 1.0, 2, 5},
	{"DLX", "Deluxe Room", "3", 1.3, 3, 3},
	{"STE", "Suite", "4", 1.8, 4, 2},
}

// fixtureDetail builds a detail response from fixture data: the hotel
// by id, or the first fixture record when the id is unknown. There is
// no tier below this one; it always succeeds.
func (s *Service) fixtureDetail(hotelID string) *types.HotelDetailResponse {
	s.metrics.IncFallbacks()

	h, ok := s.fixtures.ByID(hotelID)
	if !ok {
		h = s.fixtures.First()
	}
	if h.CheckInTime == "" {
		h.CheckInTime = types.DefaultCheckInTime
	}
	if h.CheckOutTime == "" {
		h.CheckOutTime = types.DefaultCheckOutTime
	}

	offers := make([]types.RoomType, 0, len(fallbackOffers))
	for _, o := range fallbackOffers {
		offers = append(offers, types.RoomType{
			RoomTypeID:     o.id,
			RoomTypeName:   o.name,
			BoardTypeID:    o.boardID,
			BoardTypeName:  sunhotels.BoardName(o.boardID),
			Price:          round2(h.MinPrice * o.multiplier),
			Currency:       h.Currency,
			AvailableRooms: o.available,
			MaxOccupancy:   o.occupancy,
		})
	}

	return &types.HotelDetailResponse{
		Hotel:     h,
		RoomTypes: offers,
		FromAPI:   false,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

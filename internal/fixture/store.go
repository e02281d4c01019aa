// Package fixture serves the bundled hotel dataset used as the
// terminal fallback when the live upstream cannot produce a usable
// result. The dataset is loaded once and never mutated, so it is safe
// to share across concurrent requests without synchronization.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

//go:embed data/hotels.json
var hotelsJSON []byte

// MaxResults bounds the size of any fixture result list.
const MaxResults = 20

// Store is the read-only fixture dataset.
type Store struct {
	hotels []types.Hotel
}

// Load parses the embedded dataset. Called once at startup.
func Load() (*Store, error) {
	var hotels []types.Hotel
	if err := json.Unmarshal(hotelsJSON, &hotels); err != nil {
		return nil, fmt.Errorf("loading fixture hotels: %w", err)
	}
	if len(hotels) == 0 {
		return nil, fmt.Errorf("fixture dataset is empty")
	}
	return &Store{hotels: hotels}, nil
}

// All returns a copy of every fixture record.
func (s *Store) All() []types.Hotel {
	out := make([]types.Hotel, len(s.hotels))
	copy(out, s.hotels)
	return out
}

// First returns the first fixture record, the detail fallback of last
// resort.
func (s *Store) First() types.Hotel {
	return s.hotels[0]
}

// ByID looks a fixture hotel up by id.
func (s *Store) ByID(hotelID string) (types.Hotel, bool) {
	for _, h := range s.hotels {
		if h.HotelID == hotelID {
			return h, true
		}
	}
	return types.Hotel{}, false
}

// Filter returns the records whose destination or country contains the
// given destination string, case-insensitively. An empty destination
// matches everything.
func (s *Store) Filter(destination string) []types.Hotel {
	needle := strings.ToLower(strings.TrimSpace(destination))
	if needle == "" {
		return s.All()
	}

	var out []types.Hotel
	for _, h := range s.hotels {
		if strings.Contains(strings.ToLower(h.Destination), needle) ||
			strings.Contains(strings.ToLower(h.Country), needle) {
			out = append(out, h)
		}
	}
	return out
}

// Prepare shuffles a fixture result set, truncates it to MaxResults and
// stamps default check-in/out times. Shuffling avoids serving the same
// fixed order on every degraded search.
func Prepare(hotels []types.Hotel) []types.Hotel {
	rand.Shuffle(len(hotels), func(i, j int) {
		hotels[i], hotels[j] = hotels[j], hotels[i]
	})
	if len(hotels) > MaxResults {
		hotels = hotels[:MaxResults]
	}
	for i := range hotels {
		if hotels[i].CheckInTime == "" {
			hotels[i].CheckInTime = types.DefaultCheckInTime
		}
		if hotels[i].CheckOutTime == "" {
			hotels[i].CheckOutTime = types.DefaultCheckOutTime
		}
	}
	return hotels
}

package types

import (
	"fmt"
	"strings"
	"time"
)

// Default check-in/check-out times stamped onto records whose source
// omits them.
const (
	DefaultCheckInTime  = "14:00"
	DefaultCheckOutTime = "12:00"
)

// Room is one requested room occupancy.
type Room struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"child_ages,omitempty"`
}

// SearchRequest is a normalized hotel search query.
type SearchRequest struct {
	CheckIn       string `json:"checkin"`
	CheckOut      string `json:"checkout"`
	Nationality   string `json:"nationality"`
	Currency      string `json:"currency,omitempty"`
	Language      string `json:"language,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DestinationID string `json:"destination_id,omitempty"`
	Rooms         []Room `json:"rooms"`
}

// TotalAdults sums adult occupancy across all requested rooms.
func (r SearchRequest) TotalAdults() int {
	n := 0
	for _, room := range r.Rooms {
		n += room.Adults
	}
	return n
}

// TotalChildren sums child occupancy across all requested rooms.
func (r SearchRequest) TotalChildren() int {
	n := 0
	for _, room := range r.Rooms {
		n += room.Children
	}
	return n
}

// Validate checks the request invariants: parseable dates with checkout
// strictly after checkin, and at least one room with at least one adult.
func (r SearchRequest) Validate() error {
	checkin, err := time.Parse("2006-01-02", strings.TrimSpace(r.CheckIn))
	if err != nil {
		return fmt.Errorf("checkin must be in YYYY-MM-DD format")
	}
	checkout, err := time.Parse("2006-01-02", strings.TrimSpace(r.CheckOut))
	if err != nil {
		return fmt.Errorf("checkout must be in YYYY-MM-DD format")
	}
	if !checkout.After(checkin) {
		return fmt.Errorf("checkout must be after checkin")
	}
	if len(r.Rooms) == 0 {
		return fmt.Errorf("at least one room is required")
	}
	for i, room := range r.Rooms {
		if room.Adults < 1 {
			return fmt.Errorf("room %d: adults must be at least 1", i+1)
		}
		if room.Children < 0 {
			return fmt.Errorf("room %d: children must not be negative", i+1)
		}
	}
	return nil
}

// HotelImage is one hotel photo with its display position.
type HotelImage struct {
	URL   string `json:"url"`
	Order int    `json:"order"`
}

// Hotel is a normalized inventory record. HotelID is always non-empty
// when a Hotel is surfaced to callers.
type Hotel struct {
	HotelID      string       `json:"hotel_id"`
	Name         string       `json:"name"`
	Stars        int          `json:"stars"`
	Address      string       `json:"address"`
	Destination  string       `json:"destination,omitempty"`
	Country      string       `json:"country,omitempty"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Images       []HotelImage `json:"images"`
	Facilities   []string     `json:"facilities"`
	Description  string       `json:"description"`
	CheckInTime  string       `json:"checkin_time"`
	CheckOutTime string       `json:"checkout_time"`
	MinPrice     float64      `json:"min_price,omitempty"`
	Currency     string       `json:"currency,omitempty"`
}

// RoomType is one bookable room-and-board combination for a hotel.
// Price is strictly positive when surfaced.
type RoomType struct {
	RoomTypeID     string  `json:"room_type_id"`
	RoomTypeName   string  `json:"room_type_name"`
	BoardTypeID    string  `json:"board_type_id"`
	BoardTypeName  string  `json:"board_type_name"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	AvailableRooms int     `json:"available_rooms"`
	MaxOccupancy   int     `json:"max_occupancy"`
	Description    string  `json:"description,omitempty"`
}

// SearchResponse is the adapter's answer to a search. FromAPI is false
// when the hotels were served from bundled fixture data.
type SearchResponse struct {
	SearchID string  `json:"search_id"`
	Total    int     `json:"total"`
	Hotels   []Hotel `json:"hotels"`
	FromAPI  bool    `json:"is_from_api"`
}

// HotelDetailResponse pairs one hotel with its bookable offers.
type HotelDetailResponse struct {
	Hotel     Hotel      `json:"hotel"`
	RoomTypes []RoomType `json:"room_types"`
	FromAPI   bool       `json:"is_from_api"`
}

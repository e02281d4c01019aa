package fixture_test

import (
	"fmt"
	"testing"

	"github.com/roeliffah/freestay-live-sub000/internal/fixture"
	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

func TestLoad(t *testing.T) {
	store, err := fixture.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.All()) == 0 {
		t.Fatal("fixture dataset must not be empty")
	}
	for _, h := range store.All() {
		if h.HotelID == "" {
			t.Errorf("fixture hotel %q has no id", h.Name)
		}
		if h.MinPrice <= 0 {
			t.Errorf("fixture hotel %s has non-positive min price", h.HotelID)
		}
	}
}

func TestStore_Filter(t *testing.T) {
	store, err := fixture.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		destination string
		wantSome    bool
	}{
		{"exact destination", "Antalya", true},
		{"case-insensitive", "aNTaLYa", true},
		{"substring", "stanb", true},
		{"country match", "turkey", true},
		{"no match", "Atlantis", false},
		{"empty matches everything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Filter(tt.destination)
			if tt.wantSome && len(got) == 0 {
				t.Errorf("Filter(%q) returned no hotels", tt.destination)
			}
			if !tt.wantSome && len(got) != 0 {
				t.Errorf("Filter(%q) returned %d hotels, want 0", tt.destination, len(got))
			}
		})
	}

	if got := store.Filter(""); len(got) != len(store.All()) {
		t.Errorf("empty filter returned %d of %d hotels", len(got), len(store.All()))
	}
}

func TestStore_ByID(t *testing.T) {
	store, err := fixture.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := store.First()
	if h, ok := store.ByID(first.HotelID); !ok || h.HotelID != first.HotelID {
		t.Errorf("ByID(%q) = %+v, %v", first.HotelID, h, ok)
	}
	if _, ok := store.ByID("999999"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestPrepare_BoundAndDefaults(t *testing.T) {
	var hotels []types.Hotel
	for i := 0; i < 50; i++ {
		hotels = append(hotels, types.Hotel{HotelID: fmt.Sprintf("H%03d", i)})
	}

	got := fixture.Prepare(hotels)
	if len(got) != fixture.MaxResults {
		t.Fatalf("expected %d hotels, got %d", fixture.MaxResults, len(got))
	}
	for _, h := range got {
		if h.CheckInTime != types.DefaultCheckInTime || h.CheckOutTime != types.DefaultCheckOutTime {
			t.Errorf("hotel %s missing default times: %q/%q", h.HotelID, h.CheckInTime, h.CheckOutTime)
		}
	}
}

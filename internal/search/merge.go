package search

import (
	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
	"github.com/roeliffah/freestay-live-sub000/internal/sunhotels"
)

// mergeHotel combines the static-content record with the search-derived
// one. Static values take precedence wherever present; fields absent
// from static fall back to the search record; fields absent from both
// get the documented defaults. Pricing fields only ever come from the
// search record.
func mergeHotel(static, searched *types.Hotel, hotelID string) types.Hotel {
	var merged types.Hotel
	if searched != nil {
		merged = *searched
	}

	if static != nil {
		if static.Name != "" {
			merged.Name = static.Name
		}
		if static.Description != "" {
			merged.Description = static.Description
		}
		if static.Address != "" {
			merged.Address = static.Address
		}
		if static.Destination != "" {
			merged.Destination = static.Destination
		}
		if static.Country != "" {
			merged.Country = static.Country
		}
		if static.Stars != 0 {
			merged.Stars = static.Stars
		}
		if static.Latitude != 0 || static.Longitude != 0 {
			merged.Latitude = static.Latitude
			merged.Longitude = static.Longitude
		}
		// A bare placeholder means the static record carried no images;
		// it must not override real search images.
		if hasRealImages(static.Images) || len(merged.Images) == 0 {
			merged.Images = static.Images
		}
		if len(static.Facilities) > 0 {
			merged.Facilities = static.Facilities
		}
		if static.CheckInTime != "" {
			merged.CheckInTime = static.CheckInTime
		}
		if static.CheckOutTime != "" {
			merged.CheckOutTime = static.CheckOutTime
		}
	}

	if merged.HotelID == "" {
		merged.HotelID = hotelID
	}
	if len(merged.Images) == 0 {
		merged.Images = []types.HotelImage{{URL: sunhotels.PlaceholderImageURL, Order: 0}}
	}
	if len(merged.Facilities) == 0 {
		merged.Facilities = []string{"Reception", "Daily Housekeeping"}
	}
	if merged.CheckInTime == "" {
		merged.CheckInTime = types.DefaultCheckInTime
	}
	if merged.CheckOutTime == "" {
		merged.CheckOutTime = types.DefaultCheckOutTime
	}
	return merged
}

func hasRealImages(images []types.HotelImage) bool {
	for _, img := range images {
		if img.URL != "" && img.URL != sunhotels.PlaceholderImageURL {
			return true
		}
	}
	return false
}

package sunhotels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// PlaceholderImageURL backs hotel cards whose source record carries no
// usable image.
const PlaceholderImageURL = "https://static.freestay.app/img/hotel-placeholder.jpg"

// defaultFacilities is surfaced when the source record lists none, so
// the facility block never renders empty.
var defaultFacilities = []string{"Reception", "Daily Housekeeping"}

// boardNames maps upstream numeric meal-plan codes to display names.
var boardNames = map[string]string{
	"1": "Room Only",
	"2": "Bed & Breakfast",
	"3": "Half Board",
	"4": "Full Board",
	"5": "All Inclusive",
	"6": "Ultra All Inclusive",
}

// defaultBoardName is used for meal-plan codes outside the table.
const defaultBoardName = "Room Only"

// BoardName resolves an upstream meal-plan code to its display name.
func BoardName(code string) string {
	if name, ok := boardNames[code]; ok {
		return name
	}
	return defaultBoardName
}

// soapResult unwraps Envelope/Body/<operation>Response/<operation>Result.
// Element names are probed through case variants; a missing envelope or
// body is a parse error, a missing result wrapper is tolerated (some
// upstream operations nest one level less).
func soapResult(data []byte, operation string) (*node, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	envelope := root.child("Envelope")
	if envelope == nil {
		return nil, fmt.Errorf("%s: missing SOAP envelope", operation)
	}
	body := envelope.child("Body")
	if body == nil {
		return nil, fmt.Errorf("%s: missing SOAP body", operation)
	}

	resp := body.child(operation+"Response", operation+"Result", "response")
	if resp == nil {
		return nil, fmt.Errorf("%s: missing response element", operation)
	}
	if result := resp.child(operation+"Result", "result"); result != nil {
		return result, nil
	}
	return resp, nil
}

// parseSearchResponse extracts the hotel list from a Search response.
// A record is kept only when it resolves to a non-empty hotel id and a
// strictly positive minimum price; everything else about a record may
// be missing and defaults without discarding it. Zero hotels is not an
// error.
func parseSearchResponse(data []byte) ([]types.Hotel, error) {
	result, err := soapResult(data, opSearch)
	if err != nil {
		return nil, err
	}

	container := result.child("hotels", "hotelList", "hotelResults")
	if container == nil {
		return nil, nil
	}

	var hotels []types.Hotel
	for _, hn := range container.childAll("hotel") {
		h := parseHotel(hn)
		if h.HotelID == "" || h.MinPrice <= 0 {
			continue
		}
		hotels = append(hotels, h)
	}
	return hotels, nil
}

// parseHotel normalizes one hotel element. Every field is resolved
// through ordered candidate names because upstream capitalization is
// inconsistent across records and even across fields within one record.
func parseHotel(n *node) types.Hotel {
	h := types.Hotel{
		HotelID:      n.str("hotelId", "hotel.id", "id"),
		Name:         n.str("name", "hotelName", "hotel.name"),
		Address:      n.str("address", "address1", "addr"),
		Destination:  n.str("destination", "city", "resort"),
		Country:      n.str("country", "countryName"),
		Description:  n.str("description", "shortDescription", "notes"),
		CheckInTime:  n.str("checkInTime", "checkin.time", "checkin"),
		CheckOutTime: n.str("checkOutTime", "checkout.time", "checkout"),
		Currency:     n.str("currency", "currencyCode"),
		Stars:        parseStars(n.str("classification", "category", "stars")),
		Images:       parseImages(n),
		Facilities:   parseFacilities(n),
	}

	// Coordinates arrive either nested or flat, lat/lon default to 0,0.
	pos := n.child("coordinates", "position")
	if pos == nil {
		pos = n
	}
	h.Latitude = pos.float("latitude", "lat")
	h.Longitude = pos.float("longitude", "lon", "lng", "long")

	h.MinPrice = parseMinPrice(n)

	if h.CheckInTime == "" {
		h.CheckInTime = types.DefaultCheckInTime
	}
	if h.CheckOutTime == "" {
		h.CheckOutTime = types.DefaultCheckOutTime
	}
	return h
}

// parseStars normalizes the star category into 1..5, defaulting to 3.
// The source value is sometimes decorated ("4 stars", "4.5").
func parseStars(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(raw[:end])
	if err != nil || v < 1 {
		return 3
	}
	if v > 5 {
		return 5
	}
	return v
}

// parseImages normalizes the image block. Entries arrive as either bare
// text elements or wrapped objects, single or repeated; empty entries
// are dropped and a placeholder guarantees at least one image.
func parseImages(n *node) []types.HotelImage {
	container := n.child("images", "imageList", "pictures")
	if container == nil {
		container = n
	}

	var images []types.HotelImage
	for _, img := range container.childAll("image", "img", "picture") {
		url := img.value()
		if url == "" {
			url = img.str("fullSizeImage", "url", "smallImage")
		}
		if url == "" {
			continue
		}
		order := img.integer("order", "displayOrder")
		if order == 0 {
			order = len(images)
		}
		images = append(images, types.HotelImage{URL: url, Order: order})
	}

	if len(images) == 0 {
		images = []types.HotelImage{{URL: PlaceholderImageURL, Order: 0}}
	}
	return images
}

// parseFacilities normalizes the facility block, same single-or-repeated
// shapes as images, with a non-empty default list.
func parseFacilities(n *node) []string {
	container := n.child("features", "facilities", "featureList")
	if container == nil {
		container = n
	}

	var facilities []string
	for _, f := range container.childAll("feature", "facility") {
		name := f.value()
		if name == "" {
			name = f.str("name", "title")
		}
		if name == "" {
			continue
		}
		facilities = append(facilities, name)
	}

	if len(facilities) == 0 {
		facilities = append(facilities, defaultFacilities...)
	}
	return facilities
}

// parseMinPrice resolves the cheapest rate attached to a hotel record:
// either a flat minimum-price field or the lowest entry of a price list.
func parseMinPrice(n *node) float64 {
	if v := n.float("minPrice", "minprice", "cheapestPrice"); v > 0 {
		return v
	}

	prices := n.child("prices", "priceList")
	if prices == nil {
		return 0
	}
	min := 0.0
	for _, p := range prices.childAll("price") {
		v, err := strconv.ParseFloat(p.value(), 64)
		if err != nil || v <= 0 {
			continue
		}
		if min == 0 || v < min {
			min = v
		}
	}
	return min
}

// parseHotelOffers extracts the single-hotel pricing response of a
// detail lookup: the search-derived hotel record plus its bookable
// room/board combinations. A response without a hotel element yields
// nils, which the caller treats as an empty result.
func parseHotelOffers(data []byte) (*types.Hotel, []types.RoomType, error) {
	result, err := soapResult(data, opSearch)
	if err != nil {
		return nil, nil, err
	}

	container := result.child("hotels", "hotelList", "hotelResults")
	hn := container.child("hotel")
	if hn == nil {
		return nil, nil, nil
	}

	h := parseHotel(hn)
	return &h, parseRoomTypes(hn, h.Currency), nil
}

// parseRoomTypes flattens the nested room type -> room -> meal -> price
// structure into one entry per (room type, meal plan) pair carrying a
// parseable positive price. Duplicate pairs keep the lowest price.
func parseRoomTypes(hn *node, hotelCurrency string) []types.RoomType {
	container := hn.child("roomtypes", "roomTypes")
	if container == nil {
		return nil
	}

	best := make(map[string]int) // (roomtype, board) -> index into out
	var out []types.RoomType

	for _, rt := range container.childAll("roomtype", "roomType") {
		rtID := rt.str("roomtypeId", "roomtype.id", "id")
		rtName := rt.str("name", "roomtypeName")
		if rtName == "" {
			rtName = "Standard Room"
		}
		description := rt.str("description", "notes")

		rooms := rt.child("rooms", "roomList")
		for _, room := range rooms.childAll("room") {
			beds := room.integer("beds", "numberOfBeds")
			extraBeds := room.integer("extrabeds", "extraBeds")
			occupancy := beds + extraBeds
			if occupancy == 0 {
				occupancy = 2
			}
			available := room.integer("availableRooms", "available", "numberOfRooms")

			meals := room.child("meals", "mealList")
			for _, meal := range meals.childAll("meal") {
				boardID := meal.str("id", "mealId", "labelId")
				price, currency := parseMealPrice(meal)
				if price <= 0 {
					continue
				}
				if currency == "" {
					currency = hotelCurrency
				}

				offer := types.RoomType{
					RoomTypeID:     rtID,
					RoomTypeName:   rtName,
					BoardTypeID:    boardID,
					BoardTypeName:  BoardName(boardID),
					Price:          price,
					Currency:       currency,
					AvailableRooms: available,
					MaxOccupancy:   occupancy,
					Description:    description,
				}

				key := rtID + "|" + boardID
				if i, ok := best[key]; ok {
					if offer.Price < out[i].Price {
						out[i] = offer
					}
					continue
				}
				best[key] = len(out)
				out = append(out, offer)
			}
		}
	}
	return out
}

// parseMealPrice resolves a meal's rate from either a flat price field
// or the first parseable entry of its price list.
func parseMealPrice(meal *node) (float64, string) {
	if v := meal.float("price", "totalPrice"); v > 0 {
		return v, meal.str("currency", "currencyCode")
	}

	prices := meal.child("prices", "priceList")
	for _, p := range prices.childAll("price") {
		v, err := strconv.ParseFloat(p.value(), 64)
		if err != nil || v <= 0 {
			continue
		}
		currency := p.str("currency", "currencyCode")
		if currency == "" {
			currency = meal.str("currency", "currencyCode")
		}
		return v, currency
	}
	return 0, ""
}

// parseStaticHotel extracts the static-content record for hotelID from
// a GetStaticHotelsAndRooms response. Returns nil when the hotel is not
// present in the response.
func parseStaticHotel(data []byte, hotelID string) (*types.Hotel, error) {
	result, err := soapResult(data, opStatic)
	if err != nil {
		return nil, err
	}

	container := result.child("hotels", "hotelList")
	matches := container.childAll("hotel")
	for _, hn := range matches {
		h := parseHotel(hn)
		if h.HotelID == hotelID {
			return &h, nil
		}
	}

	// Single-hotel responses sometimes omit the id field entirely; the
	// request was scoped to one hotel, so take it.
	if len(matches) == 1 {
		h := parseHotel(matches[0])
		if h.HotelID == "" {
			h.HotelID = hotelID
		}
		return &h, nil
	}
	return nil, nil
}

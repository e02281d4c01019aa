package sunhotels

import (
	"strings"
	"testing"
)

const searchResponseXML = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SearchResponse xmlns="http://xml.sunhotels.net/15/">
      <SearchResult>
        <hotels>
          <hotel>
            <hotelId>1001</hotelId>
            <name>Alpha Hotel</name>
            <classification>4</classification>
            <address>1 Alpha Street</address>
            <city>Antalya</city>
            <country>Turkey</country>
            <coordinates><Latitude>36.9</Latitude><longitude>30.7</longitude></coordinates>
            <images>
              <image><fullSizeImage>https://img.example/a1.jpg</fullSizeImage></image>
              <image><fullSizeImage>https://img.example/a2.jpg</fullSizeImage></image>
            </images>
            <features><feature>Pool</feature><feature>Spa</feature></features>
            <minPrice>99.50</minPrice>
            <currency>EUR</currency>
          </hotel>
          <hotel>
            <HotelID>1002</HotelID>
            <hotelName>Bravo Hotel</hotelName>
            <stars>5 stars</stars>
            <Latitude>41.0</Latitude>
            <Longitude>29.0</Longitude>
            <images><image>https://img.example/b.jpg</image></images>
            <minprice>250</minprice>
          </hotel>
          <hotel>
            <name>No Identifier Hotel</name>
            <minPrice>70</minPrice>
          </hotel>
          <hotel>
            <hotelId>1004</hotelId>
            <name>Free Hotel</name>
            <minPrice>0</minPrice>
          </hotel>
        </hotels>
      </SearchResult>
    </SearchResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseSearchResponse(t *testing.T) {
	hotels, err := parseSearchResponse([]byte(searchResponseXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Records without an id or a positive price are discarded.
	if len(hotels) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(hotels))
	}

	alpha := hotels[0]
	if alpha.HotelID != "1001" {
		t.Errorf("expected hotel id 1001, got %q", alpha.HotelID)
	}
	if alpha.Name != "Alpha Hotel" {
		t.Errorf("expected name Alpha Hotel, got %q", alpha.Name)
	}
	if alpha.Stars != 4 {
		t.Errorf("expected 4 stars, got %d", alpha.Stars)
	}
	if alpha.Latitude != 36.9 || alpha.Longitude != 30.7 {
		t.Errorf("expected coordinates 36.9,30.7, got %v,%v", alpha.Latitude, alpha.Longitude)
	}
	if len(alpha.Images) != 2 || alpha.Images[0].URL != "https://img.example/a1.jpg" {
		t.Errorf("unexpected images: %+v", alpha.Images)
	}
	if len(alpha.Facilities) != 2 || alpha.Facilities[0] != "Pool" {
		t.Errorf("unexpected facilities: %v", alpha.Facilities)
	}
	if alpha.MinPrice != 99.50 {
		t.Errorf("expected min price 99.50, got %v", alpha.MinPrice)
	}
	if alpha.CheckInTime != "14:00" || alpha.CheckOutTime != "12:00" {
		t.Errorf("expected default times, got %q/%q", alpha.CheckInTime, alpha.CheckOutTime)
	}

	// Bravo uses alternate casing and key variants throughout.
	bravo := hotels[1]
	if bravo.HotelID != "1002" {
		t.Errorf("expected hotel id 1002, got %q", bravo.HotelID)
	}
	if bravo.Name != "Bravo Hotel" {
		t.Errorf("expected name via hotelName variant, got %q", bravo.Name)
	}
	if bravo.Stars != 5 {
		t.Errorf("expected 5 stars from decorated value, got %d", bravo.Stars)
	}
	if bravo.Latitude != 41.0 || bravo.Longitude != 29.0 {
		t.Errorf("expected flat coordinates 41,29, got %v,%v", bravo.Latitude, bravo.Longitude)
	}
	if len(bravo.Images) != 1 || bravo.Images[0].URL != "https://img.example/b.jpg" {
		t.Errorf("expected bare-text image element to parse, got %+v", bravo.Images)
	}
	// No features block: default facility list, never empty.
	if len(bravo.Facilities) == 0 {
		t.Error("expected non-empty default facility list")
	}
}

func TestParseSearchResponse_ZeroHotels(t *testing.T) {
	xml := `<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SearchResponse><SearchResult><hotels/></SearchResult></SearchResponse>
  </soap:Body>
</soap:Envelope>`

	hotels, err := parseSearchResponse([]byte(xml))
	if err != nil {
		t.Fatalf("zero results must not be an error, got %v", err)
	}
	if len(hotels) != 0 {
		t.Errorf("expected no hotels, got %d", len(hotels))
	}
}

func TestParseSearchResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not xml", `{"hotels": []}`},
		{"truncated", `<soap:Envelope><soap:Body><Sear`},
		{"no envelope", `<html><body>gateway timeout</body></html>`},
		{"no body", `<Envelope><Header/></Envelope>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSearchResponse([]byte(tt.body)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestParseHotel_PlaceholderImage(t *testing.T) {
	root, err := parseDocument([]byte(`<hotel><hotelId>7</hotelId><name>Bare</name><images><image></image></images></hotel>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := parseHotel(root.child("hotel"))
	if len(h.Images) != 1 {
		t.Fatalf("expected exactly one placeholder image, got %d", len(h.Images))
	}
	if h.Images[0].URL != PlaceholderImageURL {
		t.Errorf("expected placeholder url, got %q", h.Images[0].URL)
	}
}

const offersResponseXML = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SearchResponse>
      <SearchResult>
        <hotels>
          <hotel>
            <hotelId>1001</hotelId>
            <name>Alpha Hotel</name>
            <minPrice>99.50</minPrice>
            <currency>EUR</currency>
            <roomtypes>
              <roomtype>
                <roomtypeId>rt-1</roomtypeId>
                <name>Double Room</name>
                <rooms>
                  <room>
                    <beds>2</beds>
                    <extrabeds>1</extrabeds>
                    <availableRooms>4</availableRooms>
                    <meals>
                      <meal><id>2</id><prices><price>110</price></prices></meal>
                      <meal><id>2</id><prices><price>99.50</price></prices></meal>
                      <meal><id>4</id><prices><price>150</price></prices></meal>
                      <meal><id>3</id><prices><price>not-a-number</price></prices></meal>
                    </meals>
                  </room>
                </rooms>
              </roomtype>
              <roomtype>
                <roomtypeId>rt-2</roomtypeId>
                <name>Suite</name>
                <rooms>
                  <room>
                    <beds>0</beds>
                    <meals>
                      <meal><id>42</id><prices><price>300</price></prices></meal>
                      <meal><id>1</id><prices><price>-5</price></prices></meal>
                    </meals>
                  </room>
                </rooms>
              </roomtype>
            </roomtypes>
          </hotel>
        </hotels>
      </SearchResult>
    </SearchResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseHotelOffers_Flattening(t *testing.T) {
	hotel, offers, err := parseHotelOffers([]byte(offersResponseXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hotel == nil || hotel.HotelID != "1001" {
		t.Fatalf("expected hotel 1001, got %+v", hotel)
	}

	// rt-1: board 2 deduplicated to its lowest price, board 3 dropped
	// (unparseable price). rt-2: unknown board defaults, negative dropped.
	if len(offers) != 3 {
		t.Fatalf("expected 3 offers, got %d: %+v", len(offers), offers)
	}

	for _, o := range offers {
		if o.Price <= 0 {
			t.Errorf("offer %s/%s has non-positive price %v", o.RoomTypeID, o.BoardTypeID, o.Price)
		}
	}

	byKey := map[string]int{}
	for i, o := range offers {
		byKey[o.RoomTypeID+"|"+o.BoardTypeID] = i
	}

	bb := offers[byKey["rt-1|2"]]
	if bb.Price != 99.50 {
		t.Errorf("expected duplicate pair to keep lowest price 99.50, got %v", bb.Price)
	}
	if bb.BoardTypeName != "Bed & Breakfast" {
		t.Errorf("expected Bed & Breakfast, got %q", bb.BoardTypeName)
	}
	if bb.MaxOccupancy != 3 {
		t.Errorf("expected occupancy beds+extrabeds=3, got %d", bb.MaxOccupancy)
	}
	if bb.AvailableRooms != 4 {
		t.Errorf("expected 4 available rooms, got %d", bb.AvailableRooms)
	}

	fb := offers[byKey["rt-1|4"]]
	if fb.BoardTypeName != "Full Board" {
		t.Errorf("expected Full Board, got %q", fb.BoardTypeName)
	}

	unknown := offers[byKey["rt-2|42"]]
	if unknown.BoardTypeName != "Room Only" {
		t.Errorf("expected unknown board code to default to Room Only, got %q", unknown.BoardTypeName)
	}
	if unknown.MaxOccupancy != 2 {
		t.Errorf("expected default occupancy 2, got %d", unknown.MaxOccupancy)
	}
}

func TestBoardName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"1", "Room Only"},
		{"2", "Bed & Breakfast"},
		{"3", "Half Board"},
		{"4", "Full Board"},
		{"5", "All Inclusive"},
		{"6", "Ultra All Inclusive"},
		{"99", "Room Only"},
		{"", "Room Only"},
	}
	for _, tt := range tests {
		if got := BoardName(tt.code); got != tt.want {
			t.Errorf("BoardName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

const staticResponseXML = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetStaticHotelsAndRoomsResponse>
      <GetStaticHotelsAndRoomsResult>
        <hotels>
          <hotel>
            <id>1001</id>
            <name>Alpha Hotel and Spa</name>
            <description>Static description.</description>
            <checkInTime>15:00</checkInTime>
            <checkOutTime>11:00</checkOutTime>
            <features><feature>Spa</feature></features>
          </hotel>
        </hotels>
      </GetStaticHotelsAndRoomsResult>
    </GetStaticHotelsAndRoomsResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseStaticHotel(t *testing.T) {
	h, err := parseStaticHotel([]byte(staticResponseXML), "1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h == nil {
		t.Fatal("expected a hotel")
	}
	if h.Name != "Alpha Hotel and Spa" {
		t.Errorf("unexpected name %q", h.Name)
	}
	if h.CheckInTime != "15:00" || h.CheckOutTime != "11:00" {
		t.Errorf("expected static times 15:00/11:00, got %q/%q", h.CheckInTime, h.CheckOutTime)
	}
}

func TestParseStaticHotel_Missing(t *testing.T) {
	xml := strings.Replace(staticResponseXML, "<hotels>", "<hotels><hotel><id>9</id></hotel>", 1)
	h, err := parseStaticHotel([]byte(xml), "555555")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != nil {
		t.Errorf("expected nil for unknown hotel, got %+v", h)
	}
}

func TestParseStaticHotel_SingleRecordWithoutID(t *testing.T) {
	xml := strings.Replace(staticResponseXML, "<id>1001</id>", "", 1)
	h, err := parseStaticHotel([]byte(xml), "1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h == nil {
		t.Fatal("expected the sole record to be attributed to the requested hotel")
	}
	if h.HotelID != "1001" {
		t.Errorf("expected id 1001, got %q", h.HotelID)
	}
}

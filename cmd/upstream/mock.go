package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// MockUpstream imitates the SunHotels SOAP endpoint, including its
// inconsistent element casing, so the gateway's defensive parsing can
// be exercised without upstream credentials.
type MockUpstream struct {
	scenario string
	logger   *zap.Logger
}

// NewMockUpstream creates a mock for the given scenario.
func NewMockUpstream(scenario string, logger *zap.Logger) *MockUpstream {
	return &MockUpstream{scenario: scenario, logger: logger}
}

// ServeHTTP dispatches on the SOAPAction header like the real endpoint.
func (m *MockUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	action := r.Header.Get("SOAPAction")
	m.logger.Info("mock upstream request", zap.String("soap_action", action))

	switch m.scenario {
	case "error":
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	case "malformed":
		m.write(w, "<soap:Envelope><broken")
		return
	}

	switch {
	case strings.HasSuffix(action, "GetStaticHotelsAndRooms"):
		m.write(w, m.staticResponse(string(body)))
	default:
		if m.scenario == "empty" {
			m.write(w, emptySearchResponse)
			return
		}
		m.write(w, m.searchResponse(string(body)))
	}
}

func (m *MockUpstream) write(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		m.logger.Error("failed to write response", zap.Error(err))
	}
}

const emptySearchResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SearchResponse xmlns="http://xml.sunhotels.net/15/">
      <SearchResult>
        <hotels/>
      </SearchResult>
    </SearchResponse>
  </soap:Body>
</soap:Envelope>`

// searchResponse returns either a destination result list or, when the
// request is scoped with hotelIDs, a single hotel with room types.
func (m *MockUpstream) searchResponse(request string) string {
	if strings.Contains(request, "<hotelIDs>") {
		return scopedSearchResponse
	}
	return destinationSearchResponse
}

// Element casing is deliberately mixed, matching real upstream traffic.
const destinationSearchResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SearchResponse xmlns="http://xml.sunhotels.net/15/">
      <SearchResult>
        <hotels>
          <hotel>
            <hotelId>900101</hotelId>
            <name>Mock Seaside Resort</name>
            <classification>5</classification>
            <address>1 Shore Road</address>
            <city>Antalya</city>
            <country>Turkey</country>
            <coordinates><Latitude>36.8841</Latitude><longitude>30.7056</longitude></coordinates>
            <images>
              <image><fullSizeImage>https://mock.example/img/900101-1.jpg</fullSizeImage></image>
              <image><fullSizeImage>https://mock.example/img/900101-2.jpg</fullSizeImage></image>
            </images>
            <features>
              <feature>Pool</feature>
              <feature>Free WiFi</feature>
            </features>
            <minPrice>120.50</minPrice>
            <currency>EUR</currency>
          </hotel>
          <hotel>
            <HotelID>900102</HotelID>
            <hotelName>Mock City Hotel</hotelName>
            <stars>3</stars>
            <Latitude>36.8531</Latitude>
            <Longitude>30.7936</Longitude>
            <images><image>https://mock.example/img/900102.jpg</image></images>
            <minprice>64</minprice>
            <currency>eur</currency>
          </hotel>
          <hotel>
            <name>No Id Hotel, Discarded By Gateway</name>
            <minPrice>55</minPrice>
          </hotel>
        </hotels>
      </SearchResult>
    </SearchResponse>
  </soap:Body>
</soap:Envelope>`

const scopedSearchResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SearchResponse xmlns="http://xml.sunhotels.net/15/">
      <SearchResult>
        <hotels>
          <hotel>
            <hotelId>900101</hotelId>
            <name>Mock Seaside Resort</name>
            <classification>5</classification>
            <minPrice>120.50</minPrice>
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
                      <meal><id>2</id><prices><price>120.50</price></prices></meal>
                      <meal><id>5</id><prices><price>190.00</price></prices></meal>
                    </meals>
                  </room>
                </rooms>
              </roomtype>
              <roomtype>
                <roomtypeId>rt-2</roomtypeId>
                <name>Junior Suite</name>
                <rooms>
                  <room>
                    <beds>3</beds>
                    <extrabeds>0</extrabeds>
                    <availableRooms>2</availableRooms>
                    <meals>
                      <meal><id>9</id><prices><price>210.00</price></prices></meal>
                      <meal><id>3</id><prices><price>0</price></prices></meal>
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

// staticResponse echoes back a static-content record for the requested
// hotel id when it is one the mock knows.
func (m *MockUpstream) staticResponse(request string) string {
	hotelID := "900101"
	if strings.Contains(request, "<hotelIDs>900102</hotelIDs>") {
		hotelID = "900102"
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetStaticHotelsAndRoomsResponse xmlns="http://xml.sunhotels.net/15/">
      <GetStaticHotelsAndRoomsResult>
        <hotels>
          <hotel>
            <id>%s</id>
            <name>Mock Seaside Resort and Spa</name>
            <description>Full static description from the content endpoint.</description>
            <address>1 Shore Road, Lara</address>
            <checkInTime>15:00</checkInTime>
            <checkOutTime>11:00</checkOutTime>
            <features>
              <feature>Spa</feature>
              <feature>Pool</feature>
              <feature>Free WiFi</feature>
            </features>
            <images>
              <image><fullSizeImage>https://mock.example/img/static-1.jpg</fullSizeImage></image>
            </images>
          </hotel>
        </hotels>
      </GetStaticHotelsAndRoomsResult>
    </GetStaticHotelsAndRoomsResponse>
  </soap:Body>
</soap:Envelope>`, hotelID)
}

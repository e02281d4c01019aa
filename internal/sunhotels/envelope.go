package sunhotels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// Namespace is the upstream SOAP namespace; SOAPAction headers are
// formed by appending the operation name.
const Namespace = "http://xml.sunhotels.net/15/"

// Upstream operation names.
const (
	opSearch = "Search"
	opStatic = "GetStaticHotelsAndRooms"
)

type param struct {
	name  string
	value string
}

// soapEnvelope renders a SOAP 1.1 request envelope for the given
// operation with the parameters in order.
func soapEnvelope(operation string, params []param) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`)
	b.WriteString(`<soap:Body>`)
	fmt.Fprintf(&b, `<%s xmlns="%s">`, operation, Namespace)
	for _, p := range params {
		fmt.Fprintf(&b, "<%s>%s</%s>", p.name, escapeXML(p.value), p.name)
	}
	fmt.Fprintf(&b, "</%s>", operation)
	b.WriteString(`</soap:Body>`)
	b.WriteString(`</soap:Envelope>`)
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// searchEnvelope builds the Search request body. When hotelID is
// non-empty the search is scoped to that single hotel (the pricing leg
// of a detail lookup). A destination ID is preferred over the free-text
// destination name when the request carries both. Coordinates are
// always requested.
func searchEnvelope(cfg Config, req types.SearchRequest, hotelID string) string {
	currency := req.Currency
	if currency == "" {
		currency = cfg.DefaultCurrency
	}

	params := []param{
		{"userName", cfg.Username},
		{"password", cfg.Password},
		{"language", MapLanguage(req.Language)},
		{"currencies", currency},
		{"checkInDate", req.CheckIn},
		{"checkOutDate", req.CheckOut},
		{"numberOfRooms", strconv.Itoa(len(req.Rooms))},
	}

	switch {
	case hotelID != "":
		params = append(params, param{"hotelIDs", hotelID})
	case req.DestinationID != "":
		params = append(params, param{"destinationID", req.DestinationID})
	default:
		params = append(params, param{"destination", req.Destination})
	}

	params = append(params,
		param{"numberOfAdults", strconv.Itoa(req.TotalAdults())},
		param{"numberOfChildren", strconv.Itoa(req.TotalChildren())},
		param{"childrenAges", childrenAges(req.Rooms)},
		param{"customerCountry", req.Nationality},
		param{"showCoordinates", "1"},
	)

	return soapEnvelope(opSearch, params)
}

// staticEnvelope builds the GetStaticHotelsAndRooms request body for a
// single hotel.
func staticEnvelope(cfg Config, hotelID, language string) string {
	return soapEnvelope(opStatic, []param{
		{"userName", cfg.Username},
		{"password", cfg.Password},
		{"language", MapLanguage(language)},
		{"hotelIDs", hotelID},
	})
}

func childrenAges(rooms []types.Room) string {
	var ages []string
	for _, room := range rooms {
		for _, age := range room.ChildAges {
			ages = append(ages, strconv.Itoa(age))
		}
	}
	return strings.Join(ages, ",")
}

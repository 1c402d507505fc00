package domain

import "time"

type FlightOrigin struct {
	Airport    string   `json:"airport"`
	GuestNames []string `json:"guestNames,omitempty"`
}

type FlightSegment struct {
	CarrierCode      string `json:"carrierCode"`
	FlightNumber     string `json:"flightNumber"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`
	DepartureTime    string `json:"departureTime"`
	ArrivalTime      string `json:"arrivalTime"`
}

type FlightLeg struct {
	Departure string          `json:"departure"`
	Arrival   string          `json:"arrival"`
	Duration  string          `json:"duration"`
	Stops     int             `json:"stops"`
	Segments  []FlightSegment `json:"segments"`
}

type FlightOffer struct {
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	Airlines []string  `json:"airlines"`
	Outbound FlightLeg `json:"outbound"`
	Return   FlightLeg `json:"return"`
}

func (o FlightOffer) TotalStops() int { return o.Outbound.Stops + o.Return.Stops }

// FlightPicks never holds the same offer twice; MostDirect is nil when only one offer exists.
type FlightPicks struct {
	Cheapest   *FlightOffer `json:"cheapest"`
	MostDirect *FlightOffer `json:"mostDirect"`
}

type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // YYYY-MM-DD
}

// FlightCacheEntry is the stored value for one route and date pair.
type FlightCacheEntry struct {
	Picks    FlightPicks `json:"picks"`
	CachedAt time.Time   `json:"cachedAt"`
}

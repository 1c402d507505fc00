package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Num decodes a model-supplied number that may arrive as a JSON number or a
// numeric string such as "$1,250". Anything unparseable decodes to 0.
type Num float64

func (n *Num) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = 0
			return nil
		}
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Num(f)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Num(f)
	return nil
}

func (n Num) Float() float64 { return float64(n) }

type CostBreakdown struct {
	FlightsAvg       Num `json:"flights_avg"`
	LodgingPerPerson Num `json:"lodging_per_person"`
	LiftTickets      Num `json:"lift_tickets"`
	Misc             Num `json:"misc"`
	Total            Num `json:"total"`
}

type ItineraryDay struct {
	Day       Num    `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type SnowConditions struct {
	CurrentSnowDepth    Num  `json:"currentSnowDepth"`
	Last24hrSnowfall    Num  `json:"last24hrSnowfall"`
	Last7daysSnowfall   Num  `json:"last7daysSnowfall"`
	SeasonTotalSnowfall Num  `json:"seasonTotalSnowfall"`
	IsHistorical        bool `json:"isHistorical"`
	HistoricalSnowDepth Num  `json:"historicalSnowDepth"`
	HistoricalSnowfall  Num  `json:"historicalSnowfall"`
}

type LodgingRecommendation struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Units         Num    `json:"units"`
	PricePerNight Num    `json:"pricePerNight"`
	CostPerPerson Num    `json:"costPerPerson"`
}

type GuestFlightDetail struct {
	GuestName          string `json:"guestName"`
	Origin             string `json:"origin"`
	DestinationAirport string `json:"destinationAirport"`
	EstimatedCost      *Num   `json:"estimatedCost"`
	Airline            string `json:"airline"`
	Stops              Num    `json:"stops"`
	Duration           string `json:"duration"`
}

type PassCoverage struct {
	Pass    string `json:"pass"`
	Covered bool   `json:"covered"`
}

// Recommendation is one model-produced pick. TerrainBreakdown, PassCoverage,
// Country, Region and SkiInOut are always overwritten from the resort catalog.
type Recommendation struct {
	ResortName            string                 `json:"resortName"`
	MatchScore            Num                    `json:"matchScore"`
	Summary               string                 `json:"summary"`
	WhyThisResort         string                 `json:"whyThisResort"`
	CostBreakdown         CostBreakdown          `json:"costBreakdown"`
	VibeMatchTags         []string               `json:"vibeMatchTags"`
	Itinerary             []ItineraryDay         `json:"itinerary"`
	Warnings              []string               `json:"warnings"`
	SnowConditions        SnowConditions         `json:"snowConditions"`
	LodgingRecommendation *LodgingRecommendation `json:"lodgingRecommendation,omitempty"`
	FlightDetailsPerGuest []GuestFlightDetail    `json:"flightDetailsPerGuest"`

	TerrainBreakdown *Terrain       `json:"terrainBreakdown,omitempty"`
	PassCoverage     []PassCoverage `json:"passCoverage,omitempty"`
	Country          string         `json:"country,omitempty"`
	Region           string         `json:"region,omitempty"`
	SkiInOut         *bool          `json:"skiInOut,omitempty"`
}

// FlightSummary maps "guestName (origin)" to resort name to estimated fare.
type FlightSummary map[string]map[string]*float64

type RecommendationSet struct {
	ID              string           `json:"id"`
	TripID          string           `json:"tripId"`
	Recommendations []Recommendation `json:"recommendations"`
	FlightSummary   FlightSummary    `json:"flightSummary"`
	Warnings        []string         `json:"warnings,omitempty"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

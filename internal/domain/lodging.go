package domain

type LodgingType string

const (
	LodgingHotel  LodgingType = "hotel"
	LodgingRental LodgingType = "rental"
)

type LodgingPreference string

const (
	PreferHotel  LodgingPreference = "hotel"
	PreferRental LodgingPreference = "rental"
	PreferAny    LodgingPreference = "any"
)

type LodgingOption struct {
	Name          string      `json:"name"`
	Type          LodgingType `json:"type"`
	Slopeside     bool        `json:"slopeside"`
	PricePerNight int         `json:"pricePerNight"`
	Sleeps        int         `json:"sleeps"`
}

type LodgingSplit struct {
	Option        LodgingOption `json:"option"`
	Units         int           `json:"units"`
	TotalCost     int           `json:"totalCost"`
	CostPerPerson int           `json:"costPerPerson"`
}

// ResortLodging lists the candidates for a resort and their splits, cheapest per person first.
// An empty BestSplits means no lodging data for the resort.
type ResortLodging struct {
	Options    []LodgingOption `json:"options"`
	BestSplits []LodgingSplit  `json:"bestSplits"`
}

func (r ResortLodging) Best() (LodgingSplit, bool) {
	if len(r.BestSplits) == 0 {
		return LodgingSplit{}, false
	}
	return r.BestSplits[0], true
}

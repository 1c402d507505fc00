package catalog

import "ski_planner/internal/domain"

// curatedLodging holds hand-picked properties for the busiest resorts.
// Resorts missing here get options synthesized from their price range.
var curatedLodging = map[string][]domain.LodgingOption{
	"Whistler Blackcomb": {
		{Name: "Fairmont Chateau Whistler", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 450, Sleeps: 2},
		{Name: "Hilton Whistler Resort", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 320, Sleeps: 2},
		{Name: "Creekside Chalet 8BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 800, Sleeps: 12},
		{Name: "Village Condo 3BR", Type: domain.LodgingRental, Slopeside: true, PricePerNight: 350, Sleeps: 6},
	},
	"Vail": {
		{Name: "Four Seasons Vail", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 600, Sleeps: 2},
		{Name: "Lodge at Vail", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 380, Sleeps: 2},
		{Name: "Vail Mountain Lodge 6BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 900, Sleeps: 10},
		{Name: "Lionshead Village 2BR", Type: domain.LodgingRental, Slopeside: true, PricePerNight: 400, Sleeps: 4},
	},
	"Park City": {
		{Name: "Montage Deer Valley", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 500, Sleeps: 2},
		{Name: "Marriott Mountainside", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 280, Sleeps: 2},
		{Name: "Canyons Village 5BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 650, Sleeps: 10},
		{Name: "Main St Townhouse 3BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 320, Sleeps: 6},
	},
	"Jackson Hole": {
		{Name: "Four Seasons Jackson Hole", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 550, Sleeps: 2},
		{Name: "Snow King Resort", Type: domain.LodgingHotel, Slopeside: false, PricePerNight: 200, Sleeps: 2},
		{Name: "Teton Village Cabin 4BR", Type: domain.LodgingRental, Slopeside: true, PricePerNight: 600, Sleeps: 8},
		{Name: "Town Square Loft 2BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 250, Sleeps: 4},
	},
	"Chamonix": {
		{Name: "Grand Hotel des Alpes", Type: domain.LodgingHotel, Slopeside: false, PricePerNight: 250, Sleeps: 2},
		{Name: "Hotel Mont-Blanc", Type: domain.LodgingHotel, Slopeside: false, PricePerNight: 350, Sleeps: 2},
		{Name: "Chalet Les Praz 5BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 500, Sleeps: 10},
		{Name: "Centre Ville Apartment 2BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 180, Sleeps: 4},
	},
	"Niseko": {
		{Name: "Hilton Niseko Village", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 250, Sleeps: 2},
		{Name: "Ki Niseko", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: 300, Sleeps: 2},
		{Name: "Hirafu Lodge 6BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 400, Sleeps: 10},
		{Name: "Annupuri Chalet 3BR", Type: domain.LodgingRental, Slopeside: false, PricePerNight: 200, Sleeps: 6},
	},
}

// CuratedLodging returns a copy of the curated options for a resort.
func CuratedLodging(resort string) ([]domain.LodgingOption, bool) {
	opts, ok := curatedLodging[resort]
	if !ok {
		return nil, false
	}
	out := make([]domain.LodgingOption, len(opts))
	copy(out, opts)
	return out, true
}

package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ski_planner/internal/app"
	"ski_planner/internal/catalog"
	"ski_planner/internal/domain"
)

func TestParseVibe(t *testing.T) {
	assert.Equal(t, app.Vibe{Energy: 50, Budget: 50, Skill: 50}, app.ParseVibe(""))
	assert.Equal(t,
		app.Vibe{Energy: 70, Budget: 40, Skill: 50, SkiInOut: true},
		app.ParseVibe("energy:70, budget : 40,skill:abc,ski-in-out:true,junk"))
}

func profile(name string) domain.ResortProfile {
	p, ok := catalog.Lookup(name)
	if !ok {
		panic("unknown resort " + name)
	}
	return p
}

func TestBuildPrompt_MarksMissingData(t *testing.T) {
	system, user := app.BuildPrompt(app.PromptInput{
		Trip: domain.Trip{Name: "Powder Week", GroupSize: 4},
		Resorts: []domain.ResortWithSnow{
			{ResortProfile: profile("Alta"), Snow: domain.ZeroSnapshot(domain.SnowCurrent)},
		},
	})

	assert.Contains(t, system, `"recommendations"`)
	assert.Contains(t, system, "top 3")
	assert.Contains(t, user, "- Dates: flexible to flexible (5 nights)")
	assert.Contains(t, user, "Energy 50/100")
	assert.Contains(t, user, "No guests submitted yet.")
	assert.Contains(t, user, "No lodging data available")
	assert.Contains(t, user, "No flight data available")
	assert.Contains(t, user, "- Geography preference: No preference")
	assert.Contains(t, user, "snow data unavailable")
	assert.NotContains(t, user, "Snow depth: 0cm")
}

func TestBuildPrompt_FullInput(t *testing.T) {
	budget := 3000.0
	alta := domain.ResortWithSnow{
		ResortProfile: profile("Alta"),
		Snow:          domain.CurrentSnapshot(domain.CurrentSnow{Depth: 182.4, Last7dSnowfall: 35.5}),
	}
	zermatt := domain.ResortWithSnow{
		ResortProfile: profile("Zermatt"),
		Snow:          domain.HistoricalSnapshot(domain.HistoricalSnow{AvgDepth: 120, TotalSnowfall: 40.2}),
	}
	split := domain.LodgingSplit{
		Option: domain.LodgingOption{Name: "Alta Lodge", Type: domain.LodgingHotel, PricePerNight: 300, Sleeps: 2},
		Units:  2, TotalCost: 3000, CostPerPerson: 750,
	}
	cheap := offer(350, 0, 1, "DL")
	flights := &app.FlightResult{
		Flights: app.FlightMatrix{
			"JFK": {"SLC": &domain.FlightPicks{Cheapest: &cheap}, "GVA": nil},
		},
		ResortAirports: map[string]string{"Alta": "SLC", "Snowbird": "SLC", "Zermatt": "GVA"},
		Origins:        []domain.FlightOrigin{{Airport: "JFK", GuestNames: []string{"Ana", "Cy"}}},
	}

	_, user := app.BuildPrompt(app.PromptInput{
		Trip: domain.Trip{
			Name: "Powder Week", GroupSize: 4,
			DateStart: dayPtr("2026-02-01"), DateEnd: dayPtr("2026-02-07"),
			BudgetAmount: &budget, BudgetType: "per_person",
			PassTypes: []string{"Ikon"}, Vibe: "energy:80,ski-in-out:true",
		},
		Guests:  []domain.Guest{{Name: "Ana", Airports: []string{"JFK", "EWR"}, OriginCity: "New York", SkillLevel: "advanced"}},
		Resorts: []domain.ResortWithSnow{alta, zermatt},
		Lodging: map[string]domain.ResortLodging{
			"Alta":    {BestSplits: []domain.LodgingSplit{split}},
			"Zermatt": {BestSplits: []domain.LodgingSplit{}},
		},
		Flights: flights,
	})

	assert.Contains(t, user, "- Dates: 2026-02-01 to 2026-02-07 (6 nights)")
	assert.Contains(t, user, "- Budget: $3000 per person")
	assert.Contains(t, user, "Energy 80/100")
	assert.Contains(t, user, "Ski-in/out: true\n")
	assert.Contains(t, user, "- Ana: from New York (airport: JFK/EWR), skill: advanced, budget: $?-$?")
	assert.Contains(t, user, "- Alta (USA): Pass: ikon, Terrain: 25%beg/40%int/20%adv/15%exp, Lift: $150, Snow depth: 182.4cm, 7-day snowfall: 35.5cm, ")
	assert.Contains(t, user, "Snow depth: 120cm, 7-day snowfall: 40.2cm (historical)")
	assert.Contains(t, user, "- Alta: Alta Lodge (hotel, $300/night, 2 units needed, $750/person total)")
	assert.Contains(t, user, "- Zermatt: no lodging data")
	assert.Contains(t, user, "From JFK (Ana, Cy):")
	assert.Contains(t, user, "- to SLC (Alta, Snowbird): cheapest $350 USD (DL, 0 stops out, 1 stops back")
	assert.Contains(t, user, "- to GVA (Zermatt): no data")
	assert.NotContains(t, user, "No flight data available")
}

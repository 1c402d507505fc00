package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ski_planner/internal/app"
	"ski_planner/internal/domain"
)

func cost(v float64) *domain.Num {
	n := domain.Num(v)
	return &n
}

func TestEnrich_OverwritesModelClaims(t *testing.T) {
	lie := true
	recs := []domain.Recommendation{
		{
			ResortName:       "vail",
			TerrainBreakdown: &domain.Terrain{Beginner: 100},
			PassCoverage:     []domain.PassCoverage{{Pass: "Ikon Pass", Covered: true}},
			Country:          "Canada",
			SkiInOut:         &lie,
		},
		{ResortName: "Chamonix"},
	}

	warns := app.Enrich(recs)
	assert.Empty(t, warns)

	vail := recs[0]
	assert.Equal(t, "Vail", vail.ResortName)
	require.NotNil(t, vail.TerrainBreakdown)
	assert.Equal(t, domain.Terrain{Beginner: 18, Intermediate: 29, Advanced: 36, Expert: 17}, *vail.TerrainBreakdown)
	assert.Equal(t, []domain.PassCoverage{{Pass: "Ikon Pass", Covered: false}, {Pass: "Epic Pass", Covered: true}}, vail.PassCoverage)
	assert.Equal(t, "USA", vail.Country)
	assert.Equal(t, "North America", vail.Region)
	require.NotNil(t, vail.SkiInOut)
	assert.True(t, *vail.SkiInOut)

	cham := recs[1]
	assert.Equal(t, []domain.PassCoverage{{Pass: "Ikon Pass", Covered: false}, {Pass: "Epic Pass", Covered: false}}, cham.PassCoverage)
	require.NotNil(t, cham.SkiInOut)
	assert.False(t, *cham.SkiInOut)
}

func TestEnrich_UnknownResortIsCleared(t *testing.T) {
	recs := []domain.Recommendation{{
		ResortName:       "Mount Imaginary",
		TerrainBreakdown: &domain.Terrain{Expert: 100},
		Country:          "Atlantis",
	}}
	warns := app.Enrich(recs)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "Mount Imaginary")
	assert.Nil(t, recs[0].TerrainBreakdown)
	assert.Nil(t, recs[0].PassCoverage)
	assert.Empty(t, recs[0].Country)
	assert.Nil(t, recs[0].SkiInOut)
}

func TestSummarizeFlights(t *testing.T) {
	recs := []domain.Recommendation{
		{ResortName: "Alta", FlightDetailsPerGuest: []domain.GuestFlightDetail{
			{GuestName: "Ana", Origin: "JFK", EstimatedCost: cost(420)},
			{GuestName: "Ben", Origin: "LAX", EstimatedCost: cost(180)},
		}},
		{ResortName: "Vail", FlightDetailsPerGuest: []domain.GuestFlightDetail{
			{GuestName: "Ana", Origin: "JFK", EstimatedCost: cost(390)},
			{GuestName: "Ben", Origin: "LAX"},
		}},
		{ResortName: "Zermatt"},
	}
	sum := app.SummarizeFlights(recs)
	require.Len(t, sum, 2)
	assert.Equal(t, 420.0, *sum["Ana (JFK)"]["Alta"])
	assert.Equal(t, 390.0, *sum["Ana (JFK)"]["Vail"])
	assert.Equal(t, 180.0, *sum["Ben (LAX)"]["Alta"])
	v, ok := sum["Ben (LAX)"]["Vail"]
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = sum["Ana (JFK)"]["Zermatt"]
	assert.False(t, ok)
}

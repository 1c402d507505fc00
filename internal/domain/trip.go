package domain

import (
	"math"
	"time"
)

type Trip struct {
	ID                 string
	UserID             string
	Name               string
	DateStart          *time.Time
	DateEnd            *time.Time
	GroupSize          int
	Geography          []string
	BudgetAmount       *float64
	BudgetType         string // per_person|total
	PassTypes          []string
	LodgingPreference  string
	SkillMin           string
	SkillMax           string
	Vibe               string // "energy:70,budget:40,skill:50,ski-in-out:true"
	HasNonSkiers       bool
	NonSkierImportance *int
	OrganizerName      string
}

// Nights is the rounded day count between the trip dates, at least 1; 5 when dates are missing.
func (t Trip) Nights() int {
	if t.DateStart == nil || t.DateEnd == nil {
		return 5
	}
	n := int(math.Round(t.DateEnd.Sub(*t.DateStart).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

type Guest struct {
	ID         string
	TripID     string
	Name       string
	Airports   []string // 1-3 IATA/ICAO codes
	OriginCity string
	SkillLevel string
	BudgetMin  *float64
	BudgetMax  *float64
	Notes      string
	Status     string
}

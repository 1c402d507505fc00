package app

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"ski_planner/internal/catalog"
	"ski_planner/internal/domain"
)

const (
	DefaultGroupSize = 4
	DefaultNights    = 5
	maxGroupSize     = 100
	maxNights        = 30
	maxResorts       = 50
)

var defaultLodgingRange = domain.LodgingRange{100, 400}

type LodgingResort struct {
	Name         string               `json:"name"`
	LodgingRange *domain.LodgingRange `json:"lodgingRange,omitempty"`
}

type LodgingRequest struct {
	Resorts    []LodgingResort
	GroupSize  int
	Preference domain.LodgingPreference
	Nights     int
}

// Validate applies defaults for zero values and checks bounds.
func (r *LodgingRequest) Validate() error {
	if r.GroupSize == 0 {
		r.GroupSize = DefaultGroupSize
	}
	if r.Nights == 0 {
		r.Nights = DefaultNights
	}
	if r.Preference == "" {
		r.Preference = domain.PreferHotel
	}
	switch {
	case len(r.Resorts) < 1 || len(r.Resorts) > maxResorts:
		return fmt.Errorf("resorts must contain 1-%d entries: %w", maxResorts, domain.ErrValidation)
	case r.GroupSize < 1 || r.GroupSize > maxGroupSize:
		return fmt.Errorf("groupSize must be 1-%d: %w", maxGroupSize, domain.ErrValidation)
	case r.Nights < 1 || r.Nights > maxNights:
		return fmt.Errorf("nights must be 1-%d: %w", maxNights, domain.ErrValidation)
	}
	for _, res := range r.Resorts {
		if strings.TrimSpace(res.Name) == "" || len(res.Name) > 100 {
			return fmt.Errorf("resort name must be 1-100 characters: %w", domain.ErrValidation)
		}
		if rg := res.LodgingRange; rg != nil && (rg[0] < 0 || rg[1] < rg[0]) {
			return fmt.Errorf("lodgingRange for %s must be [low, high]: %w", res.Name, domain.ErrValidation)
		}
	}
	return nil
}

// ParseLodgingPreference accepts hotel, rental and any, plus the Airbnb and
// "No preference" labels used by the trip form. Empty means hotel.
func ParseLodgingPreference(s string) (domain.LodgingPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hotel":
		return domain.PreferHotel, nil
	case "rental", "airbnb":
		return domain.PreferRental, nil
	case "any", "no preference", "none":
		return domain.PreferAny, nil
	}
	return "", fmt.Errorf("unknown lodging preference %q: %w", s, domain.ErrValidation)
}

// LodgingOptimizer computes the cheapest-per-person way to house a group.
// It is pure: catalog lookups are the only data it reads.
type LodgingOptimizer struct{}

func NewLodgingOptimizer() *LodgingOptimizer { return &LodgingOptimizer{} }

func (o *LodgingOptimizer) Optimize(req LodgingRequest) (map[string]domain.ResortLodging, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out := make(map[string]domain.ResortLodging, len(req.Resorts))
	for _, r := range req.Resorts {
		opts := LodgingOptionsFor(r.Name, r.LodgingRange)
		out[r.Name] = domain.ResortLodging{
			Options:    opts,
			BestSplits: OptimalSplits(opts, req.GroupSize, req.Preference, req.Nights),
		}
	}
	return out, nil
}

// LodgingOptionsFor returns curated options when known, otherwise options
// synthesized from the price range (default [100, 400]).
func LodgingOptionsFor(resort string, rng *domain.LodgingRange) []domain.LodgingOption {
	if opts, ok := catalog.CuratedLodging(resort); ok {
		return opts
	}
	r := defaultLodgingRange
	if rng != nil {
		r = *rng
	}
	return SynthesizeLodging(resort, r)
}

func SynthesizeLodging(resort string, rng domain.LodgingRange) []domain.LodgingOption {
	low, high := rng[0], rng[1]
	mid := int(math.Round(float64(low+high) / 2))
	return []domain.LodgingOption{
		{Name: resort + " Slopeside Hotel", Type: domain.LodgingHotel, Slopeside: true, PricePerNight: high, Sleeps: 2},
		{Name: resort + " Town Hotel", Type: domain.LodgingHotel, PricePerNight: mid, Sleeps: 2},
		{Name: resort + " Large Chalet", Type: domain.LodgingRental, PricePerNight: int(math.Round(float64(high) * 1.5)), Sleeps: 10},
		{Name: resort + " Condo 3BR", Type: domain.LodgingRental, PricePerNight: mid, Sleeps: 6},
	}
}

// OptimalSplits filters by preference and ranks splits by cost per person.
// Equal costs keep catalog order. No surviving option yields an empty slice.
func OptimalSplits(opts []domain.LodgingOption, groupSize int, pref domain.LodgingPreference, nights int) []domain.LodgingSplit {
	out := []domain.LodgingSplit{}
	if groupSize < 1 {
		return out
	}
	for _, opt := range opts {
		if !matches(opt, pref) || opt.Sleeps < 1 {
			continue
		}
		out = append(out, Split(opt, groupSize, nights))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CostPerPerson < out[j].CostPerPerson })
	return out
}

// Split houses groupSize people in ceil(groupSize/sleeps) units of opt.
func Split(opt domain.LodgingOption, groupSize, nights int) domain.LodgingSplit {
	units := (groupSize + opt.Sleeps - 1) / opt.Sleeps
	total := units * opt.PricePerNight * nights
	return domain.LodgingSplit{
		Option:        opt,
		Units:         units,
		TotalCost:     total,
		CostPerPerson: int(math.Round(float64(total) / float64(groupSize))),
	}
}

func matches(opt domain.LodgingOption, pref domain.LodgingPreference) bool {
	switch pref {
	case domain.PreferHotel:
		return opt.Type == domain.LodgingHotel
	case domain.PreferRental:
		return opt.Type == domain.LodgingRental
	}
	return true
}

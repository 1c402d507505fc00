package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ski_planner/internal/adapters/observability"
	"ski_planner/internal/domain"
)

// Aggregator runs the whole pipeline for one trip: snow, then lodging and
// flights side by side, then the reasoning model, enrichment and persistence.
type Aggregator struct {
	trips   domain.TripRepository
	snow    *SnowService
	lodging *LodgingOptimizer
	flights *FlightService
	model   domain.ReasoningModel
	cache   domain.Cache
	now     func() time.Time
}

func NewAggregator(trips domain.TripRepository, snow *SnowService, lodging *LodgingOptimizer, flights *FlightService, model domain.ReasoningModel, cache domain.Cache) *Aggregator {
	return &Aggregator{trips: trips, snow: snow, lodging: lodging, flights: flights, model: model, cache: cache, now: time.Now}
}

func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Generate never fails because an enrichment stage degraded. It fails on a
// missing or foreign trip, on the reasoning model, and on undecodable output.
func (a *Aggregator) Generate(ctx context.Context, tripID string, opts ...AccessOption) (domain.RecommendationSet, error) {
	trip, err := loadTrip(ctx, a.trips, tripID, opts)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	guests, err := a.trips.ListGuests(ctx, trip.ID)
	if err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("list guests for %s: %w", trip.ID, err)
	}
	logger := log.With().Str("trip_id", trip.ID).Logger()

	started := time.Now()
	snow, err := a.snow.Resorts(ctx, ResortQuery{Regions: trip.Geography, Start: trip.DateStart, End: trip.DateEnd})
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	observability.ObserveStage("snow", time.Since(started))
	logger.Info().Int("resorts", len(snow.Resorts)).Str("mode", string(snow.Mode)).Msg("snow stage done")

	var (
		lodging      map[string]domain.ResortLodging
		lodgingWarns []string
		flights      *FlightResult
		flightWarns  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.Now()
		lodging, lodgingWarns = a.lodgingFor(trip, snow.Resorts)
		observability.ObserveStage("lodging", time.Since(t))
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		flights, flightWarns = a.flightsFor(gctx, trip, guests, snow.Resorts)
		observability.ObserveStage("flights", time.Since(t))
		return nil
	})
	_ = g.Wait()

	system, user := BuildPrompt(PromptInput{Trip: trip, Guests: guests, Resorts: snow.Resorts, Lodging: lodging, Flights: flights})
	started = time.Now()
	raw, err := a.model.Generate(ctx, system, user)
	observability.ObserveStage("model", time.Since(started))
	if err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("reasoning model: %w", err)
	}
	recs, decodeWarns, err := DecodeRecommendations(raw)
	if err != nil {
		logger.Error().Err(err).Int("chars", len(raw)).Msg("model output rejected")
		return domain.RecommendationSet{}, err
	}

	warnings := append(append(lodgingWarns, flightWarns...), decodeWarns...)
	warnings = append(warnings, Enrich(recs)...)
	set := domain.RecommendationSet{
		ID:              uuid.NewString(),
		TripID:          trip.ID,
		Recommendations: recs,
		FlightSummary:   SummarizeFlights(recs),
		Warnings:        warnings,
		GeneratedAt:     a.now().UTC(),
	}

	if err := a.trips.SaveRecommendations(ctx, set); err != nil {
		degrade("persist", err).Str("trip_id", trip.ID).Msg("saving recommendations failed; returning unsaved result")
	} else if a.cache != nil {
		_ = a.cache.Del(ctx, LatestRecommendationsKey(trip.ID))
	}
	logger.Info().Str("set_id", set.ID).Int("recommendations", len(recs)).Int("warnings", len(warnings)).Msg("recommendations generated")
	return set, nil
}

func (a *Aggregator) lodgingFor(trip domain.Trip, resorts []domain.ResortWithSnow) (map[string]domain.ResortLodging, []string) {
	var warns []string
	pref, err := ParseLodgingPreference(trip.LodgingPreference)
	if err != nil {
		warns = append(warns, fmt.Sprintf("unknown lodging preference %q; considered all lodging types", trip.LodgingPreference))
		pref = domain.PreferAny
	}
	req := LodgingRequest{GroupSize: trip.GroupSize, Preference: pref, Nights: trip.Nights()}
	for _, r := range resorts {
		rng := r.LodgingRange
		req.Resorts = append(req.Resorts, LodgingResort{Name: r.Name, LodgingRange: &rng})
	}
	out, err := a.lodging.Optimize(req)
	if err != nil {
		degrade("lodging", err).Str("trip_id", trip.ID).Msg("lodging optimization failed")
		return nil, append(warns, "lodging data unavailable")
	}
	return out, warns
}

func (a *Aggregator) flightsFor(ctx context.Context, trip domain.Trip, guests []domain.Guest, resorts []domain.ResortWithSnow) (*FlightResult, []string) {
	if trip.DateStart == nil || trip.DateEnd == nil {
		return nil, []string{"flight data unavailable: trip dates not set"}
	}
	origins := GuestOrigins(guests)
	if len(origins) == 0 {
		return nil, []string{"flight data unavailable: no guest has a valid airport"}
	}
	if a.flights == nil {
		return nil, []string{"flight data unavailable"}
	}
	names := make([]string, len(resorts))
	for i, r := range resorts {
		names[i] = r.Name
	}
	res := a.flights.Search(ctx, FlightRequest{
		Origins:       origins,
		Resorts:       names,
		DepartureDate: trip.DateStart.Format(time.DateOnly),
		ReturnDate:    trip.DateEnd.Format(time.DateOnly),
	})
	return &res, nil
}

// GuestOrigins lists each guest's valid airport codes, merged by airport.
func GuestOrigins(guests []domain.Guest) []domain.FlightOrigin {
	var in []domain.FlightOrigin
	for _, g := range guests {
		for _, code := range g.Airports {
			code = strings.ToUpper(strings.TrimSpace(code))
			if !airportCode.MatchString(code) {
				continue
			}
			in = append(in, domain.FlightOrigin{Airport: code, GuestNames: []string{g.Name}})
		}
	}
	return MergeOrigins(in)
}

package app_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ski_planner/internal/domain"
)

func f(v float64) *float64 { return &v }

// ---- weather ----

type fakeWeather struct {
	forecast    domain.WeatherSeries
	archive     domain.WeatherSeries
	forecastErr error
	archiveErr  error
	failAt      map[domain.Coords]bool

	mu           sync.Mutex
	archiveCalls [][2]time.Time
	inFlight     int32
	maxInFlight  int32
	delay        time.Duration
}

func (w *fakeWeather) enter() func() {
	n := atomic.AddInt32(&w.inFlight, 1)
	for {
		m := atomic.LoadInt32(&w.maxInFlight)
		if n <= m || atomic.CompareAndSwapInt32(&w.maxInFlight, m, n) {
			break
		}
	}
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	return func() { atomic.AddInt32(&w.inFlight, -1) }
}

func (w *fakeWeather) Forecast(ctx context.Context, at domain.Coords, pastDays, forecastDays int) (domain.WeatherSeries, error) {
	defer w.enter()()
	if w.failAt[at] {
		return domain.WeatherSeries{}, fmt.Errorf("forecast: %w", domain.ErrUpstreamUnavailable)
	}
	return w.forecast, w.forecastErr
}

func (w *fakeWeather) Archive(ctx context.Context, at domain.Coords, start, end time.Time) (domain.WeatherSeries, error) {
	w.mu.Lock()
	w.archiveCalls = append(w.archiveCalls, [2]time.Time{start, end})
	w.mu.Unlock()
	if w.failAt[at] {
		return domain.WeatherSeries{}, fmt.Errorf("archive: %w", domain.ErrUpstreamUnavailable)
	}
	return w.archive, w.archiveErr
}

// ---- flights ----

type fakeFlights struct {
	offers   map[string][]domain.FlightOffer // "ORIG-DEST"
	tokenErr error
	failPair map[string]bool

	tokenCalls  int
	searchCalls []string
}

func (p *fakeFlights) Token(ctx context.Context) (string, error) {
	p.tokenCalls++
	if p.tokenErr != nil {
		return "", p.tokenErr
	}
	return "tok", nil
}

func (p *fakeFlights) SearchOffers(ctx context.Context, token string, q domain.FlightQuery) ([]domain.FlightOffer, error) {
	k := q.Origin + "-" + q.Destination
	p.searchCalls = append(p.searchCalls, k)
	if p.failPair[k] {
		return nil, fmt.Errorf("search %s: %w", k, domain.ErrUpstreamUnavailable)
	}
	return p.offers[k], nil
}

// ---- cache ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
	sets  int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.FlightCacheEntry:
		*d = v.(domain.FlightCacheEntry)
	case *domain.RecommendationSet:
		*d = v.(domain.RecommendationSet)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- pacer ----

type countingPacer struct{ waits int }

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

// ---- model ----

type fakeModel struct {
	reply  string
	err    error
	system string
	user   string
}

func (m *fakeModel) Generate(ctx context.Context, system, user string) (string, error) {
	m.system, m.user = system, user
	return m.reply, m.err
}

// ---- trips ----

type fakeTrips struct {
	trips     map[string]domain.Trip
	guests    map[string][]domain.Guest
	saved     []domain.RecommendationSet
	saveErr   error
	guestsErr error
	latestHit int
}

func (r *fakeTrips) UpsertTrip(ctx context.Context, t domain.Trip) error {
	if r.trips == nil {
		r.trips = map[string]domain.Trip{}
	}
	r.trips[t.ID] = t
	return nil
}

func (r *fakeTrips) UpsertGuest(ctx context.Context, g domain.Guest) error {
	if r.guests == nil {
		r.guests = map[string][]domain.Guest{}
	}
	for i, x := range r.guests[g.TripID] {
		if x.ID == g.ID {
			r.guests[g.TripID][i] = g
			return nil
		}
	}
	r.guests[g.TripID] = append(r.guests[g.TripID], g)
	return nil
}

func (r *fakeTrips) SaveRecommendations(ctx context.Context, set domain.RecommendationSet) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, set)
	return nil
}

func (r *fakeTrips) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	t, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeTrips) ListGuests(ctx context.Context, tripID string) ([]domain.Guest, error) {
	if r.guestsErr != nil {
		return nil, r.guestsErr
	}
	return r.guests[tripID], nil
}

func (r *fakeTrips) LatestRecommendations(ctx context.Context, tripID string) (domain.RecommendationSet, error) {
	r.latestHit++
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].TripID == tripID {
			return r.saved[i], nil
		}
	}
	return domain.RecommendationSet{}, domain.ErrNotFound
}

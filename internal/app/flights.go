package app

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ski_planner/internal/catalog"
	"ski_planner/internal/domain"
)

const (
	DefaultFlightCacheTTL = 6 * time.Hour
	DefaultPairDelay      = 250 * time.Millisecond
	maxOrigins            = 20
)

var airportCode = regexp.MustCompile(`^[A-Z]{3,4}$`)

// FlightRequest is one search across every origin and every resort airport.
type FlightRequest struct {
	Origins       []domain.FlightOrigin
	Resorts       []string
	DepartureDate string
	ReturnDate    string
}

func (r FlightRequest) Validate() error {
	if len(r.Origins) < 1 || len(r.Origins) > maxOrigins {
		return fmt.Errorf("origins must contain 1-%d entries: %w", maxOrigins, domain.ErrValidation)
	}
	for _, o := range r.Origins {
		if !airportCode.MatchString(o.Airport) {
			return fmt.Errorf("invalid airport code %q: %w", o.Airport, domain.ErrValidation)
		}
		for _, n := range o.GuestNames {
			if len(n) > 100 {
				return fmt.Errorf("guest name too long: %w", domain.ErrValidation)
			}
		}
	}
	if len(r.Resorts) < 1 || len(r.Resorts) > maxResorts {
		return fmt.Errorf("resorts must contain 1-%d entries: %w", maxResorts, domain.ErrValidation)
	}
	dep, err := time.Parse(time.DateOnly, r.DepartureDate)
	if err != nil {
		return fmt.Errorf("departureDate must be YYYY-MM-DD: %w", domain.ErrValidation)
	}
	ret, err := time.Parse(time.DateOnly, r.ReturnDate)
	if err != nil {
		return fmt.Errorf("returnDate must be YYYY-MM-DD: %w", domain.ErrValidation)
	}
	if ret.Before(dep) {
		return fmt.Errorf("returnDate before departureDate: %w", domain.ErrValidation)
	}
	return nil
}

// FlightMatrix maps origin airport to destination airport to picks; nil picks
// mean no data for that pair.
type FlightMatrix map[string]map[string]*domain.FlightPicks

type FlightResult struct {
	Flights        FlightMatrix          `json:"flights"`
	ResortAirports map[string]string     `json:"resortAirports"`
	Origins        []domain.FlightOrigin `json:"origins"`
}

// FlightService searches each origin/destination pair sequentially, paced to
// respect upstream rate limits, and caches the selected picks per route.
type FlightService struct {
	provider domain.FlightProvider
	cache    domain.Cache
	ttl      time.Duration
	pacer    Pacer
	now      func() time.Time
}

func NewFlightService(p domain.FlightProvider, c domain.Cache, ttl time.Duration, pacer Pacer) *FlightService {
	if ttl <= 0 {
		ttl = DefaultFlightCacheTTL
	}
	if pacer == nil {
		pacer = NewPacer(DefaultPairDelay)
	}
	return &FlightService{provider: p, cache: c, ttl: ttl, pacer: pacer, now: time.Now}
}

func (s *FlightService) WithClock(now func() time.Time) *FlightService {
	s.now = now
	return s
}

func FlightCacheKey(q domain.FlightQuery) string {
	return fmt.Sprintf("flights:%s:%s:%s:%s", q.Origin, q.Destination, q.DepartureDate, q.ReturnDate)
}

// Search never fails on upstream trouble: a token failure nulls every pair
// still needing a fetch, a search failure nulls only its own pair.
func (s *FlightService) Search(ctx context.Context, req FlightRequest) FlightResult {
	origins := MergeOrigins(req.Origins)
	dests := catalog.DestinationAirports(req.Resorts)

	out := make(FlightMatrix, len(origins))
	var (
		token    string
		tokenErr error
	)
	for _, o := range origins {
		row := make(map[string]*domain.FlightPicks, len(dests))
		out[o.Airport] = row
		for _, d := range dests {
			row[d] = nil
			if o.Airport == d {
				continue
			}
			q := domain.FlightQuery{Origin: o.Airport, Destination: d, DepartureDate: req.DepartureDate, ReturnDate: req.ReturnDate}
			if picks, ok := s.cached(ctx, q); ok {
				row[d] = picks
				continue
			}
			if tokenErr != nil {
				continue
			}
			if token == "" {
				token, tokenErr = s.provider.Token(ctx)
				if tokenErr != nil {
					degrade("flights", tokenErr).Msg("flight token failed; remaining uncached pairs get no data")
					continue
				}
			}
			if err := s.pacer.Wait(ctx); err != nil {
				degrade("flights", err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("flight search not started")
				continue
			}
			offers, err := s.provider.SearchOffers(ctx, token, q)
			if err != nil {
				degrade("flights", err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("flight search failed")
				continue
			}
			if len(offers) == 0 {
				continue
			}
			picks := PickBestFlights(FilterAlliance(offers))
			row[d] = &picks
			s.store(ctx, q, picks)
		}
	}
	return FlightResult{Flights: out, ResortAirports: resortAirports(req.Resorts), Origins: origins}
}

func resortAirports(resorts []string) map[string]string {
	out := make(map[string]string, len(resorts))
	for _, r := range resorts {
		if a, ok := catalog.AirportFor(r); ok {
			out[r] = a
		}
	}
	return out
}

func (s *FlightService) cached(ctx context.Context, q domain.FlightQuery) (*domain.FlightPicks, bool) {
	if s.cache == nil {
		return nil, false
	}
	var e domain.FlightCacheEntry
	ok, err := s.cache.Get(ctx, FlightCacheKey(q), &e)
	if err != nil {
		log.Warn().Err(err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("flight cache read failed")
		return nil, false
	}
	if !ok || s.now().Sub(e.CachedAt) >= s.ttl {
		return nil, false
	}
	return &e.Picks, true
}

func (s *FlightService) store(ctx context.Context, q domain.FlightQuery, picks domain.FlightPicks) {
	if s.cache == nil {
		return
	}
	e := domain.FlightCacheEntry{Picks: picks, CachedAt: s.now()}
	if err := s.cache.Set(ctx, FlightCacheKey(q), e, int(s.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("flight cache write failed")
	}
}

// MergeOrigins deduplicates airports, uppercasing codes and merging guest names.
func MergeOrigins(in []domain.FlightOrigin) []domain.FlightOrigin {
	idx := map[string]int{}
	var out []domain.FlightOrigin
	for _, o := range in {
		code := strings.ToUpper(strings.TrimSpace(o.Airport))
		if code == "" {
			continue
		}
		i, ok := idx[code]
		if !ok {
			idx[code] = len(out)
			out = append(out, domain.FlightOrigin{Airport: code})
			i = len(out) - 1
		}
		for _, n := range o.GuestNames {
			if n != "" && !contains(out[i].GuestNames, n) {
				out[i].GuestNames = append(out[i].GuestNames, n)
			}
		}
	}
	return out
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// FilterAlliance keeps offers flown at least partly by an alliance member. If
// none qualify the input is returned unchanged.
func FilterAlliance(offers []domain.FlightOffer) []domain.FlightOffer {
	var kept []domain.FlightOffer
	for _, o := range offers {
		if catalog.HasAllianceCarrier(o.Airlines) {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return offers
	}
	return kept
}

// PickBestFlights selects the cheapest offer and the most direct offer other
// than it. Price ties go to the earlier offer; stop ties go to the cheaper
// one, then the earlier one. With a single offer MostDirect is nil.
func PickBestFlights(offers []domain.FlightOffer) domain.FlightPicks {
	if len(offers) == 0 {
		return domain.FlightPicks{}
	}
	cheapest := 0
	for i, o := range offers {
		if o.Price < offers[cheapest].Price {
			cheapest = i
		}
	}

	order := make([]int, len(offers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		oa, ob := offers[order[a]], offers[order[b]]
		if oa.TotalStops() != ob.TotalStops() {
			return oa.TotalStops() < ob.TotalStops()
		}
		return oa.Price < ob.Price
	})

	c := offers[cheapest]
	picks := domain.FlightPicks{Cheapest: &c}
	for _, i := range order {
		if i != cheapest {
			d := offers[i]
			picks.MostDirect = &d
			break
		}
	}
	return picks
}

package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ski_planner/internal/catalog"
	"ski_planner/internal/domain"
)

const (
	defaultSnowConcurrency = 10
	forecastPastDays       = 7
	forecastDays           = 1
	// archive data lags; the forecast call covers the last 7 completed days
	archiveLagDays = 8
)

// SnowService attaches a weather snapshot to every catalog resort.
type SnowService struct {
	weather     domain.WeatherProvider
	concurrency int64
	now         func() time.Time
}

func NewSnowService(w domain.WeatherProvider, concurrency int) *SnowService {
	if concurrency <= 0 {
		concurrency = defaultSnowConcurrency
	}
	return &SnowService{weather: w, concurrency: int64(concurrency), now: time.Now}
}

// WithClock replaces the service clock; used by tests and batch replays.
func (s *SnowService) WithClock(now func() time.Time) *SnowService {
	s.now = now
	return s
}

type ResortQuery struct {
	Regions []string
	Start   *time.Time
	End     *time.Time
}

type ResortSnowResult struct {
	Mode    domain.SnowMode         `json:"mode"`
	Resorts []domain.ResortWithSnow `json:"resorts"`
}

// Resorts returns the filtered catalog with one snapshot per resort. Weather
// failures degrade that resort to a zero snapshot; only bad input is an error.
func (s *SnowService) Resorts(ctx context.Context, q ResortQuery) (ResortSnowResult, error) {
	if q.Start != nil && q.End != nil && q.End.Before(*q.Start) {
		return ResortSnowResult{}, fmt.Errorf("dateEnd before dateStart: %w", domain.ErrValidation)
	}
	now := s.now().UTC()
	mode := SnowModeFor(now, q.End)
	profiles := catalog.ResortsIn(q.Regions)

	out := make([]domain.ResortWithSnow, len(profiles))
	for i, p := range profiles {
		out[i] = domain.ResortWithSnow{ResortProfile: p, Snow: domain.ZeroSnapshot(mode)}
	}

	sem := semaphore.NewWeighted(s.concurrency)
	var wg sync.WaitGroup
	for i := range profiles {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Int("remaining", len(profiles)-i).Msg("snow fan-out interrupted")
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			out[i].Snow = s.snapshot(ctx, now, profiles[i], mode, q)
		}(i)
	}
	wg.Wait()

	return ResortSnowResult{Mode: mode, Resorts: out}, nil
}

func (s *SnowService) snapshot(ctx context.Context, now time.Time, p domain.ResortProfile, mode domain.SnowMode, q ResortQuery) domain.SnowSnapshot {
	if mode == domain.SnowHistorical {
		start := *q.End
		if q.Start != nil {
			start = *q.Start
		}
		from, to := HistoricalWindow(now, start, *q.End)
		series, err := s.weather.Archive(ctx, p.Coords, from, to)
		if err != nil {
			degrade("snow", err).Str("resort", p.Name).Msg("historical snow fetch failed; snow marked unavailable")
			return domain.ZeroSnapshot(mode)
		}
		return domain.HistoricalSnapshot(domain.HistoricalSnow{
			AvgDepth:      round1(meanDepth(series.HourlySnowDepth) * 100),
			TotalSnowfall: round1(sum(series.DailySnowfall)),
			WindowStart:   from,
			WindowEnd:     to,
		})
	}

	series, err := s.weather.Forecast(ctx, p.Coords, forecastPastDays, forecastDays)
	if err != nil {
		degrade("snow", err).Str("resort", p.Name).Msg("snow forecast failed; snow marked unavailable")
		return domain.ZeroSnapshot(mode)
	}

	// the newest daily entry is today and still partial
	completed := series.DailySnowfall
	if n := len(completed); n > 0 {
		completed = completed[:n-1]
	}
	if n := len(completed); n > forecastPastDays {
		completed = completed[n-forecastPastDays:]
	}
	var last24h float64
	if n := len(completed); n > 0 {
		last24h = val(completed[n-1])
	}
	last7d := sum(completed)

	seasonTotal := last7d
	seasonStart, _ := SeasonWindow(now)
	archiveEnd := dateOf(now).AddDate(0, 0, -archiveLagDays)
	if !archiveEnd.Before(seasonStart) {
		arch, err := s.weather.Archive(ctx, p.Coords, seasonStart, archiveEnd)
		if err != nil {
			degrade("snow_archive", err).Str("resort", p.Name).Msg("season archive failed; season total covers forecast window only")
		} else {
			seasonTotal += sum(arch.DailySnowfall)
		}
	}

	return domain.CurrentSnapshot(domain.CurrentSnow{
		Depth:               round1(latestDepth(series.HourlySnowDepth) * 100),
		Last24hSnowfall:     round1(last24h),
		Last7dSnowfall:      round1(last7d),
		SeasonTotalSnowfall: round1(seasonTotal),
	})
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func sum(xs []*float64) float64 {
	var t float64
	for _, x := range xs {
		t += val(x)
	}
	return t
}

// latestDepth scans newest to oldest for the first usable reading.
func latestDepth(xs []*float64) float64 {
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] != nil && *xs[i] >= 0 {
			return *xs[i]
		}
	}
	return 0
}

func meanDepth(xs []*float64) float64 {
	var t float64
	var n int
	for _, x := range xs {
		if x != nil && *x >= 0 {
			t += *x
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return t / float64(n)
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ski_planner/internal/app"
	"ski_planner/internal/catalog"
	"ski_planner/internal/domain"
)

func clock(s string) func() time.Time {
	t := day(s).Add(15 * time.Hour)
	return func() time.Time { return t }
}

func eightDays() []*float64 {
	// 7 completed days then today's partial entry
	return []*float64{f(1), f(2), nil, f(3), f(4), f(5), f(6), f(50)}
}

func TestSnow_CurrentMode(t *testing.T) {
	w := &fakeWeather{
		forecast: domain.WeatherSeries{
			DailySnowfall:   eightDays(),
			HourlySnowDepth: []*float64{f(1.0), f(1.234), f(-1), nil},
		},
		archive: domain.WeatherSeries{DailySnowfall: []*float64{f(100), f(20.6)}},
	}
	svc := app.NewSnowService(w, 10).WithClock(clock("2026-01-15"))

	res, err := svc.Resorts(context.Background(), app.ResortQuery{Regions: []string{catalog.RegionAsia}})
	require.NoError(t, err)
	assert.Equal(t, domain.SnowCurrent, res.Mode)
	require.Len(t, res.Resorts, 4)

	s := res.Resorts[0].Snow
	require.NotNil(t, s.Current)
	assert.Nil(t, s.Historical)
	assert.Equal(t, 123.4, s.Current.Depth, "newest non-negative reading, in cm")
	assert.Equal(t, 6.0, s.Current.Last24hSnowfall, "second to last daily entry")
	assert.Equal(t, 21.0, s.Current.Last7dSnowfall, "today's partial entry excluded")
	assert.Equal(t, 141.6, s.Current.SeasonTotalSnowfall, "archive plus completed forecast days")

	// archive covers season start through 8 days ago
	require.NotEmpty(t, w.archiveCalls)
	assert.Equal(t, day("2025-11-01"), w.archiveCalls[0][0])
	assert.Equal(t, day("2026-01-07"), w.archiveCalls[0][1])
}

func TestSnow_ArchiveFailureDegradesSeasonTotal(t *testing.T) {
	w := &fakeWeather{
		forecast:   domain.WeatherSeries{DailySnowfall: eightDays()},
		archiveErr: fmt.Errorf("archive: %w", domain.ErrUpstreamUnavailable),
	}
	svc := app.NewSnowService(w, 10).WithClock(clock("2026-01-15"))

	res, err := svc.Resorts(context.Background(), app.ResortQuery{Regions: []string{catalog.RegionAsia}})
	require.NoError(t, err)
	for _, r := range res.Resorts {
		assert.Equal(t, 21.0, r.Snow.Current.SeasonTotalSnowfall)
		assert.False(t, r.Snow.Unavailable, "forecast figures are still real")
	}
}

func TestSnow_SkipsArchiveEarlyInSeason(t *testing.T) {
	w := &fakeWeather{forecast: domain.WeatherSeries{DailySnowfall: eightDays()}}
	svc := app.NewSnowService(w, 10).WithClock(clock("2025-11-05"))

	_, err := svc.Resorts(context.Background(), app.ResortQuery{Regions: []string{catalog.RegionAsia}})
	require.NoError(t, err)
	assert.Empty(t, w.archiveCalls)
}

func TestSnow_PerResortFailureIsIsolated(t *testing.T) {
	niseko, ok := catalog.Lookup("Niseko")
	require.True(t, ok)

	w := &fakeWeather{
		forecast: domain.WeatherSeries{DailySnowfall: eightDays(), HourlySnowDepth: []*float64{f(2)}},
		failAt:   map[domain.Coords]bool{niseko.Coords: true},
	}
	svc := app.NewSnowService(w, 10).WithClock(clock("2026-01-15"))

	res, err := svc.Resorts(context.Background(), app.ResortQuery{Regions: []string{catalog.RegionAsia}})
	require.NoError(t, err)
	for _, r := range res.Resorts {
		require.NotNil(t, r.Snow.Current, r.Name)
		if r.Name == "Niseko" {
			assert.Equal(t, domain.CurrentSnow{}, *r.Snow.Current)
			assert.True(t, r.Snow.Unavailable, "failed fetch is flagged, not reported as zero snow")
			continue
		}
		assert.False(t, r.Snow.Unavailable, r.Name)
		assert.Equal(t, 200.0, r.Snow.Current.Depth, r.Name)
	}
}

func TestSnow_HistoricalMode(t *testing.T) {
	w := &fakeWeather{
		archive: domain.WeatherSeries{
			DailySnowfall:   []*float64{f(10), nil, f(5.25)},
			HourlySnowDepth: []*float64{f(1), f(2), nil, f(-3), f(3)},
		},
	}
	svc := app.NewSnowService(w, 10).WithClock(clock("2026-01-15"))

	res, err := svc.Resorts(context.Background(), app.ResortQuery{
		Regions: []string{catalog.RegionEurope},
		Start:   dayPtr("2026-12-20"),
		End:     dayPtr("2026-12-27"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SnowHistorical, res.Mode)

	h := res.Resorts[0].Snow.Historical
	require.NotNil(t, h)
	assert.Equal(t, 200.0, h.AvgDepth)
	assert.Equal(t, 15.3, h.TotalSnowfall)
	assert.Equal(t, day("2024-12-20"), h.WindowStart)
	assert.Equal(t, day("2024-12-27"), h.WindowEnd)
}

func TestSnow_HistoricalFailureIsFlagged(t *testing.T) {
	w := &fakeWeather{archiveErr: fmt.Errorf("archive: %w", domain.ErrUpstreamUnavailable)}
	svc := app.NewSnowService(w, 10).WithClock(clock("2026-01-15"))

	res, err := svc.Resorts(context.Background(), app.ResortQuery{
		Regions: []string{catalog.RegionAsia},
		Start:   dayPtr("2026-12-20"),
		End:     dayPtr("2026-12-27"),
	})
	require.NoError(t, err)
	require.Len(t, res.Resorts, 4)
	for _, r := range res.Resorts {
		require.NotNil(t, r.Snow.Historical, r.Name)
		assert.True(t, r.Snow.Unavailable, r.Name)
	}
}

func TestSnow_BoundedConcurrency(t *testing.T) {
	w := &fakeWeather{
		forecast: domain.WeatherSeries{DailySnowfall: eightDays()},
		delay:    20 * time.Millisecond,
	}
	svc := app.NewSnowService(w, 3).WithClock(clock("2025-11-05"))

	res, err := svc.Resorts(context.Background(), app.ResortQuery{})
	require.NoError(t, err)
	assert.Len(t, res.Resorts, 40)
	assert.LessOrEqual(t, w.maxInFlight, int32(3))
	assert.Greater(t, w.maxInFlight, int32(0))
}

func TestSnow_RejectsInvertedDates(t *testing.T) {
	svc := app.NewSnowService(&fakeWeather{}, 10)
	_, err := svc.Resorts(context.Background(), app.ResortQuery{Start: dayPtr("2026-02-10"), End: dayPtr("2026-02-01")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

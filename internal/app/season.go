package app

import (
	"time"

	"ski_planner/internal/domain"
)

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SeasonWindow returns the Nov 1 to Apr 30 season containing or preceding now.
// Seasons begin in the current calendar year during Nov/Dec, otherwise the previous one.
func SeasonWindow(now time.Time) (start, end time.Time) {
	y := now.Year()
	if now.Month() < time.November {
		y--
	}
	start = time.Date(y, time.November, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(y+1, time.April, 30, 0, 0, 0, 0, time.UTC)
	return start, end
}

// SnowModeFor is historical when the trip ends after the active season's Apr 30.
func SnowModeFor(now time.Time, tripEnd *time.Time) domain.SnowMode {
	if tripEnd == nil {
		return domain.SnowCurrent
	}
	_, end := SeasonWindow(now)
	if dateOf(*tripEnd).After(end) {
		return domain.SnowHistorical
	}
	return domain.SnowCurrent
}

// HistoricalWindow maps the trip's month/day span onto the most recently
// completed season. A trip crossing New Year keeps its end in the next year.
func HistoricalWindow(now time.Time, tripStart, tripEnd time.Time) (start, end time.Time) {
	endYear := now.Year()
	if now.Month() <= time.April {
		endYear--
	}
	startYear := endYear
	if tripStart.Month() >= time.November {
		startYear--
	}
	start = time.Date(startYear, tripStart.Month(), tripStart.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(startYear, tripEnd.Month(), tripEnd.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		end = end.AddDate(1, 0, 0)
	}
	// the archive only holds the past
	if today := dateOf(now); !end.Before(today) {
		start = start.AddDate(-1, 0, 0)
		end = end.AddDate(-1, 0, 0)
	}
	return start, end
}

package domain

import "time"

type SnowMode string

const (
	SnowCurrent    SnowMode = "current"
	SnowHistorical SnowMode = "historical"
)

// CurrentSnow values are centimetres.
type CurrentSnow struct {
	Depth               float64 `json:"currentSnowDepth"`
	Last24hSnowfall     float64 `json:"last24hrSnowfall"`
	Last7dSnowfall      float64 `json:"last7daysSnowfall"`
	SeasonTotalSnowfall float64 `json:"seasonTotalSnowfall"`
}

type HistoricalSnow struct {
	AvgDepth      float64   `json:"historicalSnowDepth"`
	TotalSnowfall float64   `json:"historicalSnowfall"`
	WindowStart   time.Time `json:"windowStart"`
	WindowEnd     time.Time `json:"windowEnd"`
}

// SnowSnapshot carries exactly one of Current or Historical, selected by Mode.
type SnowSnapshot struct {
	Mode       SnowMode        `json:"mode"`
	Current    *CurrentSnow    `json:"current,omitempty"`
	Historical *HistoricalSnow `json:"historical,omitempty"`
	// Unavailable marks a placeholder for a failed fetch; its figures are not readings.
	Unavailable bool `json:"unavailable,omitempty"`
}

func CurrentSnapshot(c CurrentSnow) SnowSnapshot {
	return SnowSnapshot{Mode: SnowCurrent, Current: &c}
}

func HistoricalSnapshot(h HistoricalSnow) SnowSnapshot {
	return SnowSnapshot{Mode: SnowHistorical, Historical: &h}
}

// ZeroSnapshot is what a resort gets when its weather fetch failed. It
// keeps the zeroed shape for API clients and is flagged Unavailable.
func ZeroSnapshot(mode SnowMode) SnowSnapshot {
	s := CurrentSnapshot(CurrentSnow{})
	if mode == SnowHistorical {
		s = HistoricalSnapshot(HistoricalSnow{})
	}
	s.Unavailable = true
	return s
}

func (s SnowSnapshot) Depth() float64 {
	switch {
	case s.Current != nil:
		return s.Current.Depth
	case s.Historical != nil:
		return s.Historical.AvgDepth
	}
	return 0
}

// RecentSnowfall is the 7-day total in current mode, the window total otherwise.
func (s SnowSnapshot) RecentSnowfall() float64 {
	switch {
	case s.Current != nil:
		return s.Current.Last7dSnowfall
	case s.Historical != nil:
		return s.Historical.TotalSnowfall
	}
	return 0
}

// WeatherSeries is the raw provider payload; nil entries are gaps in the data.
type WeatherSeries struct {
	DailySnowfall   []*float64 // cm per day, oldest first
	HourlySnowDepth []*float64 // metres, oldest first
}

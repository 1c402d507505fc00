package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"ski_planner/internal/adapters/upstream"
	"ski_planner/internal/domain"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultArchiveURL  = "https://archive-api.open-meteo.com/v1/archive"
)

// Client implements domain.WeatherProvider against the Open-Meteo forecast and archive APIs.
type Client struct {
	forecastURL string
	archiveURL  string
	up          *upstream.Client
}

func New(forecastURL, archiveURL string, up *upstream.Client) *Client {
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if archiveURL == "" {
		archiveURL = DefaultArchiveURL
	}
	return &Client{forecastURL: forecastURL, archiveURL: archiveURL, up: up}
}

type response struct {
	Daily struct {
		Time        []string   `json:"time"`
		SnowfallSum []*float64 `json:"snowfall_sum"`
	} `json:"daily"`
	Hourly struct {
		Time      []string   `json:"time"`
		SnowDepth []*float64 `json:"snow_depth"`
	} `json:"hourly"`
}

func (c *Client) Forecast(ctx context.Context, at domain.Coords, pastDays, forecastDays int) (domain.WeatherSeries, error) {
	q := baseQuery(at)
	q.Set("past_days", strconv.Itoa(pastDays))
	q.Set("forecast_days", strconv.Itoa(forecastDays))
	return c.fetch(ctx, "forecast", c.forecastURL+"?"+q.Encode())
}

func (c *Client) Archive(ctx context.Context, at domain.Coords, start, end time.Time) (domain.WeatherSeries, error) {
	q := baseQuery(at)
	q.Set("start_date", start.Format(time.DateOnly))
	q.Set("end_date", end.Format(time.DateOnly))
	return c.fetch(ctx, "archive", c.archiveURL+"?"+q.Encode())
}

func (c *Client) fetch(ctx context.Context, endpoint, u string) (domain.WeatherSeries, error) {
	var r response
	if err := c.up.GetJSON(ctx, endpoint, u, nil, &r); err != nil {
		return domain.WeatherSeries{}, err
	}
	return domain.WeatherSeries{
		DailySnowfall:   r.Daily.SnowfallSum,
		HourlySnowDepth: r.Hourly.SnowDepth,
	}, nil
}

func baseQuery(at domain.Coords) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	q.Set("daily", "snowfall_sum")
	q.Set("hourly", "snow_depth")
	q.Set("timezone", "auto")
	return q
}

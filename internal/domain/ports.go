package domain

import (
	"context"
	"time"
)

type WeatherProvider interface {
	Forecast(ctx context.Context, at Coords, pastDays, forecastDays int) (WeatherSeries, error)
	Archive(ctx context.Context, at Coords, start, end time.Time) (WeatherSeries, error)
}

type FlightProvider interface {
	// Token returns a bearer token for SearchOffers; it may be cached by the provider.
	Token(ctx context.Context) (string, error)
	SearchOffers(ctx context.Context, token string, q FlightQuery) ([]FlightOffer, error)
}

type ReasoningModel interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type TripRepository interface {
	// Write paths
	UpsertTrip(ctx context.Context, t Trip) error
	UpsertGuest(ctx context.Context, g Guest) error
	SaveRecommendations(ctx context.Context, set RecommendationSet) error

	// Read paths
	GetTrip(ctx context.Context, id string) (Trip, error)
	ListGuests(ctx context.Context, tripID string) ([]Guest, error)
	LatestRecommendations(ctx context.Context, tripID string) (RecommendationSet, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

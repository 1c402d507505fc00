package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ski_planner/internal/domain"
)

// AccessOption restricts a trip lookup to a caller.
type AccessOption func(*access)

type access struct {
	userID string
}

// OwnedBy requires the trip to belong to userID. An empty userID is ErrUnauthorized.
func OwnedBy(userID string) AccessOption {
	return func(a *access) { a.userID = userID }
}

func loadTrip(ctx context.Context, trips domain.TripRepository, tripID string, opts []AccessOption) (domain.Trip, error) {
	var acc *access
	if len(opts) > 0 {
		acc = &access{}
		for _, o := range opts {
			o(acc)
		}
		if acc.userID == "" {
			return domain.Trip{}, fmt.Errorf("missing caller identity: %w", domain.ErrUnauthorized)
		}
	}
	if tripID == "" {
		return domain.Trip{}, fmt.Errorf("tripId is required: %w", domain.ErrValidation)
	}
	trip, err := trips.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
		}
		return domain.Trip{}, fmt.Errorf("load trip %s: %w", tripID, err)
	}
	if acc != nil && trip.UserID != acc.userID {
		return domain.Trip{}, fmt.Errorf("trip %s: %w", tripID, domain.ErrForbidden)
	}
	return trip, nil
}

func LatestRecommendationsKey(tripID string) string {
	return "recs:latest:" + tripID
}

// QueryService serves persisted recommendation sets through a read-through cache.
type QueryService struct {
	trips    domain.TripRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.TripRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{trips: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) LatestRecommendations(ctx context.Context, tripID string, opts ...AccessOption) (domain.RecommendationSet, error) {
	trip, err := loadTrip(ctx, s.trips, tripID, opts)
	if err != nil {
		return domain.RecommendationSet{}, err
	}
	key := LatestRecommendationsKey(trip.ID)
	var set domain.RecommendationSet
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &set); ok {
			return set, nil
		}
	}
	set, err = s.trips.LatestRecommendations(ctx, trip.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RecommendationSet{}, fmt.Errorf("no recommendations for trip %s: %w", trip.ID, domain.ErrNotFound)
		}
		return domain.RecommendationSet{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, set, int(s.cacheTTL.Seconds()))
	}
	return set, nil
}

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ski_planner/internal/domain"
)

const maxAirportsPerGuest = 3

// TripService stores trips and their guest rosters.
type TripService struct {
	repo domain.TripRepository
}

func NewTripService(r domain.TripRepository) *TripService {
	return &TripService{repo: r}
}

// SaveTrip creates or replaces a trip owned by userID along with any guests
// given. A trip that exists under another owner is ErrForbidden.
func (s *TripService) SaveTrip(ctx context.Context, userID string, in TripInput, guests []GuestInput) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, fmt.Errorf("missing caller identity: %w", domain.ErrUnauthorized)
	}
	trip, err := mapTrip(in, userID)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	if trip.ID == "" {
		trip.ID = uuid.NewString()
	} else {
		// Existing trips keep their owner.
		prev, err := s.repo.GetTrip(ctx, trip.ID)
		switch {
		case err == nil && prev.UserID != userID:
			return domain.Trip{}, fmt.Errorf("trip %s: %w", trip.ID, domain.ErrForbidden)
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return domain.Trip{}, fmt.Errorf("load trip %s: %w", trip.ID, err)
		}
	}

	mapped := make([]domain.Guest, 0, len(guests))
	for _, gi := range guests {
		g := mapGuest(trip.ID, gi)
		if err := validateGuest(g); err != nil {
			return domain.Trip{}, err
		}
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		mapped = append(mapped, g)
	}

	// Parent upsert first to satisfy the guests foreign key.
	if err := s.repo.UpsertTrip(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("upsert trip %s: %w", trip.ID, err)
	}
	for _, g := range mapped {
		if err := s.repo.UpsertGuest(ctx, g); err != nil {
			return domain.Trip{}, fmt.Errorf("upsert guest %s for trip %s: %w", g.Name, trip.ID, err)
		}
	}
	return trip, nil
}

func validateTrip(t domain.Trip) error {
	switch {
	case t.Name == "" || len(t.Name) > 200:
		return fmt.Errorf("tripName must be 1-200 characters: %w", domain.ErrValidation)
	case t.GroupSize < 1 || t.GroupSize > maxGroupSize:
		return fmt.Errorf("groupSize must be 1-%d: %w", maxGroupSize, domain.ErrValidation)
	case t.DateStart != nil && t.DateEnd != nil && t.DateEnd.Before(*t.DateStart):
		return fmt.Errorf("dateEnd before dateStart: %w", domain.ErrValidation)
	case t.BudgetType != "per_person" && t.BudgetType != "total":
		return fmt.Errorf("budgetType must be per_person or total: %w", domain.ErrValidation)
	case t.NonSkierImportance != nil && (*t.NonSkierImportance < 0 || *t.NonSkierImportance > 10):
		return fmt.Errorf("nonSkierImportance must be 0-10: %w", domain.ErrValidation)
	}
	if _, err := ParseLodgingPreference(t.LodgingPreference); err != nil {
		return err
	}
	return nil
}

func validateGuest(g domain.Guest) error {
	if g.Name == "" || len(g.Name) > 100 {
		return fmt.Errorf("guest name must be 1-100 characters: %w", domain.ErrValidation)
	}
	if len(g.Airports) > maxAirportsPerGuest {
		return fmt.Errorf("guest %s has more than %d airports: %w", g.Name, maxAirportsPerGuest, domain.ErrValidation)
	}
	for _, a := range g.Airports {
		if !airportCode.MatchString(a) {
			return fmt.Errorf("guest %s has invalid airport code %q: %w", g.Name, a, domain.ErrValidation)
		}
	}
	return nil
}

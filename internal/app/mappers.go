package app

import (
	"fmt"
	"strings"
	"time"

	"ski_planner/internal/domain"
)

/********** trip form payloads **********/

// TripInput is the organizer's trip form. Dates are YYYY-MM-DD and optional.
type TripInput struct {
	ID                 string   `json:"id"`
	Name               string   `json:"tripName"`
	DateStart          string   `json:"dateStart"`
	DateEnd            string   `json:"dateEnd"`
	GroupSize          int      `json:"groupSize"`
	Geography          []string `json:"geography"`
	BudgetAmount       *float64 `json:"budgetAmount"`
	BudgetType         string   `json:"budgetType"`
	PassTypes          []string `json:"passTypes"`
	LodgingPreference  string   `json:"lodgingPreference"`
	SkillMin           string   `json:"skillMin"`
	SkillMax           string   `json:"skillMax"`
	Vibe               string   `json:"vibe"`
	HasNonSkiers       bool     `json:"hasNonSkiers"`
	NonSkierImportance *int     `json:"nonSkierImportance"`
	OrganizerName      string   `json:"organizerName"`
}

// GuestInput is one invitee's answers.
type GuestInput struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Airports   []string `json:"airports"`
	OriginCity string   `json:"originCity"`
	SkillLevel string   `json:"skillLevel"`
	BudgetMin  *float64 `json:"budgetMin"`
	BudgetMax  *float64 `json:"budgetMax"`
	Notes      string   `json:"notes"`
	Status     string   `json:"status"`
}

/********** tiny helpers **********/

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, domain.ErrValidation)
	}
	return &t, nil
}

func trimAll(xs []string) []string {
	var out []string
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

/********** mappers **********/

func mapTrip(in TripInput, userID string) (domain.Trip, error) {
	start, err := parseDate("dateStart", in.DateStart)
	if err != nil {
		return domain.Trip{}, err
	}
	end, err := parseDate("dateEnd", in.DateEnd)
	if err != nil {
		return domain.Trip{}, err
	}
	return domain.Trip{
		ID:                 strings.TrimSpace(in.ID),
		UserID:             userID,
		Name:               strings.TrimSpace(in.Name),
		DateStart:          start,
		DateEnd:            end,
		GroupSize:          in.GroupSize,
		Geography:          trimAll(in.Geography),
		BudgetAmount:       in.BudgetAmount,
		BudgetType:         orDefault(in.BudgetType, "per_person"),
		PassTypes:          trimAll(in.PassTypes),
		LodgingPreference:  strings.TrimSpace(in.LodgingPreference),
		SkillMin:           strings.TrimSpace(in.SkillMin),
		SkillMax:           strings.TrimSpace(in.SkillMax),
		Vibe:               strings.TrimSpace(in.Vibe),
		HasNonSkiers:       in.HasNonSkiers,
		NonSkierImportance: in.NonSkierImportance,
		OrganizerName:      strings.TrimSpace(in.OrganizerName),
	}, nil
}

func mapGuest(tripID string, in GuestInput) domain.Guest {
	airports := trimAll(in.Airports)
	for i, a := range airports {
		airports[i] = strings.ToUpper(a)
	}
	return domain.Guest{
		ID:         strings.TrimSpace(in.ID),
		TripID:     tripID,
		Name:       strings.TrimSpace(in.Name),
		Airports:   airports,
		OriginCity: strings.TrimSpace(in.OriginCity),
		SkillLevel: strings.TrimSpace(in.SkillLevel),
		BudgetMin:  in.BudgetMin,
		BudgetMax:  in.BudgetMax,
		Notes:      strings.TrimSpace(in.Notes),
		Status:     orDefault(in.Status, "submitted"),
	}
}

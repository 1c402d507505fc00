package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ski_planner/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valDate(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.Format(time.DateOnly)
}
func valJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func strList(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func ptrTime(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time.UTC()
	return &t
}
func ptrF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
func ptrInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertTrip(ctx context.Context, t domain.Trip) error {
	geo, err := valJSON(strList(t.Geography))
	if err != nil {
		return fmt.Errorf("encode geography: %w", err)
	}
	passes, err := valJSON(strList(t.PassTypes))
	if err != nil {
		return fmt.Errorf("encode pass types: %w", err)
	}
	_, err = r.db.ExecContext(ctx, upsertTripSQL,
		t.ID,
		t.UserID,
		t.Name,
		valDate(t.DateStart),
		valDate(t.DateEnd),
		t.GroupSize,
		geo,
		valF64(t.BudgetAmount),
		t.BudgetType,
		passes,
		t.LodgingPreference,
		t.SkillMin,
		t.SkillMax,
		t.Vibe,
		t.HasNonSkiers,
		valInt(t.NonSkierImportance),
		t.OrganizerName,
	)
	if err != nil {
		return fmt.Errorf("upsert trip: %v: %w", err, domain.ErrPersistence)
	}
	return nil
}

func (r *Repo) UpsertGuest(ctx context.Context, g domain.Guest) error {
	airports, err := valJSON(strList(g.Airports))
	if err != nil {
		return fmt.Errorf("encode airports: %w", err)
	}
	_, err = r.db.ExecContext(ctx, upsertGuestSQL,
		g.ID,
		g.TripID,
		g.Name,
		airports,
		g.OriginCity,
		g.SkillLevel,
		valF64(g.BudgetMin),
		valF64(g.BudgetMax),
		valStr(g.Notes),
		g.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert guest: %v: %w", err, domain.ErrPersistence)
	}
	return nil
}

// SaveRecommendations appends a set; earlier sets for the trip are kept as history.
func (r *Repo) SaveRecommendations(ctx context.Context, set domain.RecommendationSet) error {
	body, err := valJSON(set)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, insertRecommendationsSQL, set.ID, set.TripID, body, set.GeneratedAt.UTC()); err != nil {
		return fmt.Errorf("insert recommendations: %v: %w", err, domain.ErrPersistence)
	}
	return nil
}

func (r *Repo) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	var (
		t                 domain.Trip
		start, end        sql.NullTime
		budget            sql.NullFloat64
		importance        sql.NullInt64
		geoRaw, passesRaw []byte
	)
	err := r.db.QueryRowContext(ctx, getTripSQL, id).Scan(
		&t.ID, &t.UserID, &t.Name, &start, &end, &t.GroupSize, &geoRaw, &budget, &t.BudgetType,
		&passesRaw, &t.LodgingPreference, &t.SkillMin, &t.SkillMax, &t.Vibe, &t.HasNonSkiers, &importance, &t.OrganizerName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip: %w", err)
	}
	_ = json.Unmarshal(geoRaw, &t.Geography)
	_ = json.Unmarshal(passesRaw, &t.PassTypes)
	t.DateStart, t.DateEnd = ptrTime(start), ptrTime(end)
	t.BudgetAmount = ptrF64(budget)
	t.NonSkierImportance = ptrInt(importance)
	return t, nil
}

func (r *Repo) ListGuests(ctx context.Context, tripID string) ([]domain.Guest, error) {
	rows, err := r.db.QueryContext(ctx, listGuestsSQL, tripID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var out []domain.Guest
	for rows.Next() {
		var (
			g          domain.Guest
			airports   []byte
			bmin, bmax sql.NullFloat64
			notes      sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.TripID, &g.Name, &airports, &g.OriginCity, &g.SkillLevel, &bmin, &bmax, &notes, &g.Status); err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		_ = json.Unmarshal(airports, &g.Airports)
		g.BudgetMin, g.BudgetMax = ptrF64(bmin), ptrF64(bmax)
		g.Notes = notes.String
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repo) LatestRecommendations(ctx context.Context, tripID string) (domain.RecommendationSet, error) {
	var (
		id, trip string
		raw      []byte
		at       time.Time
	)
	err := r.db.QueryRowContext(ctx, latestRecommendationsSQL, tripID).Scan(&id, &trip, &raw, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RecommendationSet{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("latest recommendations: %w", err)
	}
	var set domain.RecommendationSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("decode recommendations %s: %w", id, err)
	}
	// columns are authoritative over the stored document
	set.ID, set.TripID, set.GeneratedAt = id, trip, at.UTC()
	return set, nil
}

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ski_planner/internal/adapters/observability"
)

// FlightCache implements domain.Cache on the flight_cache table, for
// deployments without Redis. Expired rows read as misses until PurgeExpired
// or a running RunPurger deletes them.
type FlightCache struct {
	db  *sql.DB
	now func() time.Time
}

func NewFlightCache(db *sql.DB) *FlightCache {
	return &FlightCache{db: db, now: time.Now}
}

func (c *FlightCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := c.db.QueryRowContext(ctx, getFlightCacheSQL, key, c.now().UTC()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveCache("mysql", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		observability.ObserveCache("mysql", "miss")
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	observability.ObserveCache("mysql", "hit")
	return true, nil
}

// Set stores v as JSON; ttlSec <= 0 keeps the row for a year.
func (c *FlightCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	ttl := time.Duration(ttlSec) * time.Second
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	observability.ObserveCache("mysql", "set")
	_, err = c.db.ExecContext(ctx, upsertFlightCacheSQL, key, string(b), c.now().UTC().Add(ttl))
	return err
}

func (c *FlightCache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("mysql", "del")
	_, err := c.db.ExecContext(ctx, deleteFlightCacheSQL, key)
	return err
}

// PurgeExpired deletes rows past their expiry and reports how many went.
func (c *FlightCache) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, purgeFlightCacheSQL, c.now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RunPurger calls PurgeExpired every interval until ctx is done.
func (c *FlightCache) RunPurger(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Hour
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := c.PurgeExpired(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Msg("flight cache purge failed")
				}
				continue
			}
			if n > 0 {
				log.Info().Int64("rows", n).Msg("flight cache purged")
			}
		}
	}
}

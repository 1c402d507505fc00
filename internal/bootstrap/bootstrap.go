// Package bootstrap assembles the pipeline from configuration so the API
// and the batch recommender run the same stack.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"ski_planner/internal/adapters/amadeus"
	"ski_planner/internal/adapters/gemini"
	"ski_planner/internal/adapters/openmeteo"
	redisad "ski_planner/internal/adapters/redis"
	"ski_planner/internal/adapters/upstream"
	"ski_planner/internal/app"
	"ski_planner/internal/domain"
	"ski_planner/internal/shared"
	mysqlrepo "ski_planner/internal/storage/mysql"
)

const (
	weatherTimeout = 15 * time.Second
	flightsTimeout = 30 * time.Second
	cachePrefix    = "ski:"
)

type Stack struct {
	DB          *sql.DB
	Repo        *mysqlrepo.Repo
	Redis       *redisad.Cache
	FlightCache domain.Cache

	Snow    *app.SnowService
	Lodging *app.LodgingOptimizer
	Flights *app.FlightService
	Agg     *app.Aggregator
	Trips   *app.TripService
	Q       *app.QueryService
}

// Open connects MySQL and Redis and builds every service. MySQL must be
// reachable; an unreachable Redis only degrades caching.
func Open(ctx context.Context, cfg shared.Config) (*Stack, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	log.Info().Msg("database connection ok")

	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cachePrefix)
	if err := rc.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; caches will miss")
	}

	s := &Stack{DB: db, Repo: mysqlrepo.New(db), Redis: rc}
	switch cfg.FlightCacheBackend {
	case shared.CacheBackendMySQL:
		s.FlightCache = mysqlrepo.NewFlightCache(db)
	default:
		s.FlightCache = rc
	}
	log.Info().Str("backend", cfg.FlightCacheBackend).Msg("flight cache selected")

	weather := openmeteo.New(cfg.OpenMeteoForecastURL, cfg.OpenMeteoArchiveURL,
		upstream.New("open-meteo", weatherTimeout, cfg.UpstreamRPS))
	flights := amadeus.New(amadeus.Config{
		BaseURL:      cfg.AmadeusBase,
		ClientID:     cfg.AmadeusID,
		ClientSecret: cfg.AmadeusSecret,
		Currency:     cfg.FlightCurrency,
		MaxOffers:    cfg.FlightMaxOffers,
	}, upstream.New("amadeus", flightsTimeout, cfg.UpstreamRPS))
	model := gemini.New(cfg.GeminiBase, cfg.GeminiModel, cfg.GeminiKey,
		upstream.New("gemini", cfg.HTTPTimeout, cfg.UpstreamRPS))

	s.Snow = app.NewSnowService(weather, cfg.SnowBatchSize)
	s.Lodging = app.NewLodgingOptimizer()
	s.Flights = app.NewFlightService(flights, s.FlightCache, cfg.FlightCacheTTL, app.NewPacer(cfg.FlightPairDelay))
	s.Agg = app.NewAggregator(s.Repo, s.Snow, s.Lodging, s.Flights, model, rc)
	s.Trips = app.NewTripService(s.Repo)
	s.Q = app.NewQueryService(s.Repo, rc, cfg.RecsCacheTTL)
	return s, nil
}

// StartFlightCachePurge runs the expired-row purger in the background when
// flights are cached in MySQL. Redis expires keys itself. It reports whether
// a purger was started.
func (s *Stack) StartFlightCachePurge(ctx context.Context, every time.Duration) bool {
	fc, ok := s.FlightCache.(*mysqlrepo.FlightCache)
	if !ok {
		return false
	}
	go fc.RunPurger(ctx, every)
	log.Info().Dur("every", every).Msg("flight cache purger started")
	return true
}

// PurgeFlightCache removes expired MySQL cache rows once; a no-op for Redis.
func (s *Stack) PurgeFlightCache(ctx context.Context) {
	fc, ok := s.FlightCache.(*mysqlrepo.FlightCache)
	if !ok {
		return
	}
	n, err := fc.PurgeExpired(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("flight cache purge failed")
		return
	}
	log.Info().Int64("rows", n).Msg("flight cache purged")
}

func (s *Stack) Close() {
	if err := s.Redis.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
	if err := s.DB.Close(); err != nil {
		log.Warn().Err(err).Msg("db close failed")
	}
}

package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	CacheBackendRedis = "redis"
	CacheBackendMySQL = "mysql"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	HTTPTimeout time.Duration
	MetricsAddr string
	MySQLDSN    string
	// MigrationsDir, when set, is applied at API startup.
	MigrationsDir string
	RedisAddr     string
	RedisDB       int
	RedisPass     string

	FlightCacheBackend string
	FlightCacheTTL     time.Duration
	FlightCachePurge   time.Duration
	FlightPairDelay    time.Duration
	FlightMaxOffers    int
	FlightCurrency     string

	OpenMeteoForecastURL string
	OpenMeteoArchiveURL  string
	SnowBatchSize        int

	AmadeusBase   string
	AmadeusID     string
	AmadeusSecret string

	GeminiBase  string
	GeminiKey   string
	GeminiModel string

	UpstreamRPS      int
	RecommendWorkers int
	RecsCacheTTL     time.Duration
}

// LoadDotEnv reads a .env file when present. Variables already set win.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("could not load env file")
		}
	}
}

func Load() Config {
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		HTTPTimeout:   time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
		MetricsAddr:   env("METRICS_ADDR", ""),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/skiplanner?parseTime=true&charset=utf8mb4&loc=UTC"),
		MigrationsDir: env("MIGRATIONS_DIR", ""),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),

		FlightCacheBackend: env("FLIGHT_CACHE_BACKEND", CacheBackendRedis),
		FlightCacheTTL:     time.Duration(atoi("FLIGHT_CACHE_TTL_HOURS", 6)) * time.Hour,
		FlightCachePurge:   time.Duration(atoi("FLIGHT_CACHE_PURGE_MINUTES", 60)) * time.Minute,
		FlightPairDelay:    time.Duration(atoi("FLIGHT_PAIR_DELAY_MS", 250)) * time.Millisecond,
		FlightMaxOffers:    atoi("FLIGHT_MAX_OFFERS", 5),
		FlightCurrency:     env("FLIGHT_CURRENCY", "USD"),

		OpenMeteoForecastURL: env("OPEN_METEO_FORECAST_URL", ""),
		OpenMeteoArchiveURL:  env("OPEN_METEO_ARCHIVE_URL", ""),
		SnowBatchSize:        atoi("SNOW_BATCH_SIZE", 10),

		AmadeusBase:   env("AMADEUS_BASE_URL", ""),
		AmadeusID:     env("AMADEUS_CLIENT_ID", ""),
		AmadeusSecret: env("AMADEUS_CLIENT_SECRET", ""),

		GeminiBase:  env("GEMINI_BASE_URL", ""),
		GeminiKey:   env("GEMINI_API_KEY", ""),
		GeminiModel: env("GEMINI_MODEL", ""),

		UpstreamRPS:      atoi("UPSTREAM_RPS", 5),
		RecommendWorkers: atoi("RECOMMEND_WORKERS", 4),
		RecsCacheTTL:     time.Duration(atoi("RECS_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.FlightCacheBackend != CacheBackendRedis && c.FlightCacheBackend != CacheBackendMySQL {
		log.Warn().Str("backend", c.FlightCacheBackend).Msg("unknown FLIGHT_CACHE_BACKEND, using redis")
		c.FlightCacheBackend = CacheBackendRedis
	}
	if c.AmadeusID == "" || c.AmadeusSecret == "" {
		log.Warn().Msg("AMADEUS_CLIENT_ID/AMADEUS_CLIENT_SECRET empty; flight data will be unavailable")
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; recommendations will fail")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

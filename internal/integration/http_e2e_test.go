//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "ski_planner/internal/adapters/http_server"
	"ski_planner/internal/bootstrap"
	"ski_planner/internal/domain"
	"ski_planner/internal/shared"
	mysqlrepo "ski_planner/internal/storage/mysql"
)

const modelReply = `{"recommendations":[
 {"resortName":"Niseko","matchScore":93,"summary":"Deep powder.","costBreakdown":{"flights_avg":1180.5,"lodging_per_person":700,"lift_tickets":450,"misc":400,"total":2730.5},
  "flightDetailsPerGuest":[{"guestName":"Ana","origin":"JFK","destinationAirport":"CTS","estimatedCost":1180.5},
                           {"guestName":"Ben","origin":"LAX","destinationAirport":"CTS","estimatedCost":910}]},
 {"resortName":"hakuba","matchScore":85,"summary":"Big Alps feel.",
  "flightDetailsPerGuest":[{"guestName":"Ana","origin":"JFK","destinationAirport":"NRT","estimatedCost":990}]}
]}`

// upstreams fakes Open-Meteo, the Amadeus token and offer endpoints, and Gemini on one server.
type upstreams struct {
	tokens   atomic.Int32
	searches atomic.Int32

	mu      sync.Mutex
	prompts []string
}

func (u *upstreams) handler() http.Handler {
	mux := http.NewServeMux()
	weather := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["d1","d2","d3"],"snowfall_sum":[4.5,12,null]},"hourly":{"time":["h1","h2"],"snow_depth":[1.1,1.25]}}`))
	}
	mux.HandleFunc("/forecast", weather)
	mux.HandleFunc("/archive", weather)
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		u.tokens.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		u.searches.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		from, to := q.Get("originLocationCode"), q.Get("destinationLocationCode")
		fmt.Fprintf(w, `{"data":[{"price":{"currency":"USD","grandTotal":"1180.50"},"itineraries":[
			{"duration":"PT14H","segments":[{"carrierCode":"NH","number":"9","departure":{"iataCode":%q},"arrival":{"iataCode":%q}}]},
			{"duration":"PT13H","segments":[{"carrierCode":"NH","number":"10","departure":{"iataCode":%q},"arrival":{"iataCode":%q}}]}]}]}`,
			from, to, to, from)
	})
	mux.HandleFunc("/models/gemini-test:generateContent", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			u.mu.Lock()
			u.prompts = append(u.prompts, req.Contents[0].Parts[0].Text)
			u.mu.Unlock()
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": modelReply}}}}},
		})
	})
	return mux
}

func (u *upstreams) lastPrompt() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.prompts) == 0 {
		return ""
	}
	return u.prompts[len(u.prompts)-1]
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	dir, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	return dir
}

func startMySQL(t *testing.T) string {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=skiplanner",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "run mysql")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/skiplanner?parseTime=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))
	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	}), "connect mysql")
	require.NoError(t, mysqlrepo.Migrate(dsn, migrationsDir(t)))
	return dsn
}

type client struct {
	t    *testing.T
	base string
}

func (c client) do(method, path, user string, body any, hdr map[string]string) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(server.UserHeader, user)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func TestHTTP_EndToEnd_TripToRecommendations(t *testing.T) {
	dsn := startMySQL(t)
	mr := miniredis.RunT(t)

	up := &upstreams{}
	fake := httptest.NewServer(up.handler())
	defer fake.Close()

	cfg := shared.Config{
		AppEnv:               "test",
		HTTPTimeout:          30 * time.Second,
		MySQLDSN:             dsn,
		RedisAddr:            mr.Addr(),
		FlightCacheBackend:   shared.CacheBackendMySQL,
		FlightCacheTTL:       6 * time.Hour,
		FlightPairDelay:      time.Millisecond,
		FlightMaxOffers:      5,
		FlightCurrency:       "USD",
		OpenMeteoForecastURL: fake.URL + "/forecast",
		OpenMeteoArchiveURL:  fake.URL + "/archive",
		SnowBatchSize:        4,
		AmadeusBase:          fake.URL,
		AmadeusID:            "id",
		AmadeusSecret:        "secret",
		GeminiBase:           fake.URL,
		GeminiKey:            "key",
		GeminiModel:          "gemini-test",
		UpstreamRPS:          100,
		RecsCacheTTL:         time.Minute,
	}
	stack, err := bootstrap.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(stack.Close)

	srv := server.New(cfg.HTTPTimeout)
	srv.MountHandlers(&server.Handlers{
		Snow: stack.Snow, Lodging: stack.Lodging, Flights: stack.Flights,
		Agg: stack.Agg, Trips: stack.Trips, Q: stack.Q,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()
	c := client{t: t, base: ts.URL}

	// 1) organizer saves the trip with two guests
	res := c.do(http.MethodPost, "/v1/trips", "user-1", map[string]any{
		"trip": map[string]any{
			"tripName": "Japow", "dateStart": "2026-02-01", "dateEnd": "2026-02-08",
			"groupSize": 3, "geography": []string{"Japan/Asia"}, "lodgingPreference": "hotel",
			"vibe": "energy:60,ski-in-out:true",
		},
		"guests": []map[string]any{
			{"name": "Ana", "airports": []string{"jfk"}, "originCity": "New York"},
			{"name": "Ben", "airports": []string{"LAX"}},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var saved struct {
		TripID string `json:"tripId"`
		Nights int    `json:"nights"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&saved))
	require.NotEmpty(t, saved.TripID)
	assert.Equal(t, 7, saved.Nights)

	latestPath := "/v1/trips/" + saved.TripID + "/recommendations"
	res = c.do(http.MethodGet, latestPath, "user-1", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// 2) first generation: every route is searched once
	res = c.do(http.MethodPost, "/v1/recommendations", "user-1", map[string]string{"tripId": saved.TripID}, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var set domain.RecommendationSet
	require.NoError(t, json.NewDecoder(res.Body).Decode(&set))
	require.Len(t, set.Recommendations, 2)
	assert.Equal(t, "Niseko", set.Recommendations[0].ResortName)
	assert.Equal(t, "Hakuba", set.Recommendations[1].ResortName)
	assert.Contains(t, set.Warnings, "model returned only 2 recommendations")
	assert.Contains(t, set.FlightSummary, "Ana (JFK)")
	assert.Contains(t, set.FlightSummary, "Ben (LAX)")

	// JFK and LAX against CTS and NRT
	assert.EqualValues(t, 4, up.searches.Load())
	assert.EqualValues(t, 1, up.tokens.Load())
	prompt := up.lastPrompt()
	assert.Contains(t, prompt, "## Flight Offers")
	assert.Contains(t, prompt, "From JFK (Ana):")
	assert.Contains(t, prompt, "$1180.5 USD")

	// 3) latest set is served with an ETag and cached in Redis
	res = c.do(http.MethodGet, latestPath, "user-1", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	etag := res.Header.Get("ETag")
	require.NotEmpty(t, etag)
	var latest domain.RecommendationSet
	require.NoError(t, json.NewDecoder(res.Body).Decode(&latest))
	assert.Equal(t, set.ID, latest.ID)
	assert.True(t, mr.Exists("ski:recs:latest:"+saved.TripID))

	res = c.do(http.MethodGet, latestPath, "user-1", nil, map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, res.StatusCode)

	res = c.do(http.MethodGet, latestPath, "user-2", nil, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res = c.do(http.MethodGet, latestPath, "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// 4) regeneration is served from the flight cache and invalidates the latest set
	res = c.do(http.MethodPost, "/v1/recommendations", "user-1", map[string]string{"tripId": saved.TripID}, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var second domain.RecommendationSet
	require.NoError(t, json.NewDecoder(res.Body).Decode(&second))
	assert.NotEqual(t, set.ID, second.ID)
	assert.EqualValues(t, 4, up.searches.Load())
	assert.EqualValues(t, 1, up.tokens.Load())
	assert.False(t, mr.Exists("ski:recs:latest:"+saved.TripID))

	res = c.do(http.MethodGet, latestPath, "user-1", nil, map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&latest))
	assert.Equal(t, second.ID, latest.ID)
	assert.True(t, strings.HasPrefix(res.Header.Get("ETag"), `W/"`))
}

package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "ski_planner/internal/adapters/http_server"
	"ski_planner/internal/app"
	"ski_planner/internal/domain"
)

// ---- fakes ----

type stubWeather struct{}

func (stubWeather) Forecast(ctx context.Context, at domain.Coords, pastDays, forecastDays int) (domain.WeatherSeries, error) {
	return domain.WeatherSeries{}, nil
}

func (stubWeather) Archive(ctx context.Context, at domain.Coords, start, end time.Time) (domain.WeatherSeries, error) {
	return domain.WeatherSeries{}, nil
}

type stubFlights struct {
	offers map[string][]domain.FlightOffer
}

func (stubFlights) Token(ctx context.Context) (string, error) { return "tok", nil }

func (s stubFlights) SearchOffers(ctx context.Context, token string, q domain.FlightQuery) ([]domain.FlightOffer, error) {
	return s.offers[q.Origin+"-"+q.Destination], nil
}

type stubModel struct {
	reply string
	err   error
}

func (m *stubModel) Generate(ctx context.Context, system, user string) (string, error) {
	return m.reply, m.err
}

type memTrips struct {
	trips  map[string]domain.Trip
	guests map[string][]domain.Guest
	sets   map[string]domain.RecommendationSet
}

func newMemTrips() *memTrips {
	return &memTrips{trips: map[string]domain.Trip{}, guests: map[string][]domain.Guest{}, sets: map[string]domain.RecommendationSet{}}
}

func (m *memTrips) UpsertTrip(ctx context.Context, t domain.Trip) error {
	m.trips[t.ID] = t
	return nil
}
func (m *memTrips) UpsertGuest(ctx context.Context, g domain.Guest) error {
	m.guests[g.TripID] = append(m.guests[g.TripID], g)
	return nil
}
func (m *memTrips) SaveRecommendations(ctx context.Context, s domain.RecommendationSet) error {
	m.sets[s.TripID] = s
	return nil
}
func (m *memTrips) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}
func (m *memTrips) ListGuests(ctx context.Context, id string) ([]domain.Guest, error) {
	return m.guests[id], nil
}
func (m *memTrips) LatestRecommendations(ctx context.Context, id string) (domain.RecommendationSet, error) {
	s, ok := m.sets[id]
	if !ok {
		return domain.RecommendationSet{}, domain.ErrNotFound
	}
	return s, nil
}

// ---- harness ----

const reply = `{"recommendations":[{"resortName":"Niseko","matchScore":90},{"resortName":"Hakuba","matchScore":80},{"resortName":"Furano","matchScore":70}]}`

type harness struct {
	ts    *httptest.Server
	trips *memTrips
	model *stubModel
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	trips := newMemTrips()
	model := &stubModel{reply: reply}
	flights := stubFlights{offers: map[string][]domain.FlightOffer{
		"JFK-SLC": {{Price: 320, Currency: "USD", Airlines: []string{"DL"}}, {Price: 410, Currency: "USD", Airlines: []string{"UA"}}},
	}}

	snow := app.NewSnowService(stubWeather{}, 4)
	lodging := app.NewLodgingOptimizer()
	fs := app.NewFlightService(flights, nil, 0, app.NewPacer(0))

	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{
		Snow:    snow,
		Lodging: lodging,
		Flights: fs,
		Agg:     app.NewAggregator(trips, snow, lodging, fs, model, nil),
		Trips:   app.NewTripService(trips),
		Q:       app.NewQueryService(trips, nil, time.Minute),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &harness{ts: ts, trips: trips, model: model}
}

func (h *harness) do(t *testing.T, method, path, user string, body any, hdr ...string) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(server.UserHeader, user)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

// ---- tests ----

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	res, err := http.Get(h.ts.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestResorts(t *testing.T) {
	h := newHarness(t)

	res, body := h.do(t, http.MethodPost, "/v1/resorts", "", map[string]any{"regions": []string{"Japan/Asia"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, body["resorts"], 4)
	assert.Contains(t, []any{"current", "historical"}, body["mode"])

	res, body = h.do(t, http.MethodPost, "/v1/resorts", "", map[string]any{"dateStart": "2026-02-10", "dateEnd": "2026-02-01"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"))
	assert.EqualValues(t, 400, body["status"])

	res, _ = h.do(t, http.MethodPost, "/v1/resorts", "", map[string]any{"dateEnd": "01/02/2026"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLodging(t *testing.T) {
	h := newHarness(t)

	res, body := h.do(t, http.MethodPost, "/v1/lodging", "", map[string]any{
		"resorts":           []map[string]any{{"name": "Test Peak", "lodgingRange": []int{200, 200}}},
		"groupSize":         5,
		"lodgingPreference": "Hotel",
		"nights":            6,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	peak := body["lodging"].(map[string]any)["Test Peak"].(map[string]any)
	best := peak["bestSplits"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 3, best["units"])
	assert.EqualValues(t, 3600, best["totalCost"])
	assert.EqualValues(t, 720, best["costPerPerson"])

	res, _ = h.do(t, http.MethodPost, "/v1/lodging", "", map[string]any{
		"resorts": []map[string]any{{"name": "Vail"}}, "lodgingPreference": "yurt",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = h.do(t, http.MethodPost, "/v1/lodging", "", map[string]any{"resorts": []any{}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFlights(t *testing.T) {
	h := newHarness(t)

	res, body := h.do(t, http.MethodPost, "/v1/flights", "", map[string]any{
		"origins":       []map[string]any{{"airport": "JFK", "guestName": "Ana"}},
		"resorts":       []string{"Alta"},
		"departureDate": "2026-02-01",
		"returnDate":    "2026-02-07",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	slc := body["flights"].(map[string]any)["JFK"].(map[string]any)["SLC"].(map[string]any)
	assert.EqualValues(t, 320, slc["cheapest"].(map[string]any)["price"])
	assert.EqualValues(t, 410, slc["mostDirect"].(map[string]any)["price"])
	assert.Equal(t, "SLC", body["resortAirports"].(map[string]any)["Alta"])

	res, _ = h.do(t, http.MethodPost, "/v1/flights", "", map[string]any{
		"origins":       []map[string]any{{"airport": "new york"}},
		"resorts":       []string{"Alta"},
		"departureDate": "2026-02-01",
		"returnDate":    "2026-02-07",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = h.do(t, http.MethodPost, "/v1/flights", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRecommendations_Lifecycle(t *testing.T) {
	h := newHarness(t)
	trip := map[string]any{
		"trip": map[string]any{
			"tripName": "Japow", "groupSize": 4, "geography": []string{"Japan/Asia"},
			"lodgingPreference": "Hotel",
		},
		"guests": []map[string]any{{"name": "Ana", "airports": []string{"JFK"}}},
	}

	res, _ := h.do(t, http.MethodPost, "/v1/trips", "", trip)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := h.do(t, http.MethodPost, "/v1/trips", "u1", trip)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	tripID := body["tripId"].(string)
	require.NotEmpty(t, tripID)

	res, _ = h.do(t, http.MethodGet, "/v1/trips/"+tripID+"/recommendations", "u1", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = h.do(t, http.MethodPost, "/v1/recommendations", "", map[string]any{"tripId": tripID})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = h.do(t, http.MethodPost, "/v1/recommendations", "u2", map[string]any{"tripId": tripID})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = h.do(t, http.MethodPost, "/v1/recommendations", "u1", map[string]any{"tripId": "missing"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = h.do(t, http.MethodPost, "/v1/recommendations", "u1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = h.do(t, http.MethodPost, "/v1/recommendations", "u1", map[string]any{"tripId": tripID})
	require.Equal(t, http.StatusOK, res.StatusCode)
	recs := body["recommendations"].([]any)
	require.Len(t, recs, 3)
	first := recs[0].(map[string]any)
	assert.Equal(t, "Japan", first["country"])
	assert.NotNil(t, first["terrainBreakdown"])
	assert.Contains(t, body["warnings"], "flight data unavailable: trip dates not set")

	res, body = h.do(t, http.MethodGet, "/v1/trips/"+tripID+"/recommendations", "u1", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	etag := res.Header.Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, tripID, body["tripId"])

	res, _ = h.do(t, http.MethodGet, "/v1/trips/"+tripID+"/recommendations", "u1", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, res.StatusCode)

	res, _ = h.do(t, http.MethodGet, "/v1/trips/"+tripID+"/recommendations", "u2", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestRecommendations_ModelErrors(t *testing.T) {
	h := newHarness(t)
	h.trips.trips["t1"] = domain.Trip{ID: "t1", UserID: "u1", Name: "x", GroupSize: 2, Geography: []string{"Japan/Asia"}}

	h.model.err = fmt.Errorf("gemini: %w", domain.ErrUpstreamUnavailable)
	res, body := h.do(t, http.MethodPost, "/v1/recommendations", "u1", map[string]any{"tripId": "t1"})
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.EqualValues(t, 502, body["status"])

	h.model.err = nil
	h.model.reply = "three great resorts!"
	res, _ = h.do(t, http.MethodPost, "/v1/recommendations", "u1", map[string]any{"tripId": "t1"})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, h.trips.sets)
}

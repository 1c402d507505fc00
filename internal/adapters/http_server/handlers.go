// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ski_planner/internal/app"
	"ski_planner/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Snow    *app.SnowService
	Lodging *app.LodgingOptimizer
	Flights *app.FlightService
	Agg     *app.Aggregator
	Trips   *app.TripService
	Q       *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/resorts", h.resorts)
	s.mux.Post("/v1/lodging", h.lodging)
	s.mux.Post("/v1/flights", h.flights)
	s.mux.Group(func(r chi.Router) {
		r.Use(Identity)
		r.Post("/v1/trips", h.saveTrip)
		r.Post("/v1/recommendations", h.recommend)
		r.Get("/v1/trips/{id}/recommendations", h.latest)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Upstream errors only
// reach here from the reasoning model; every other stage degrades instead.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "trip belongs to another user")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUpstreamAuth), errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("reasoning model failed")
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", "failed to generate recommendations, please try again")
	case errors.Is(err, domain.ErrParse):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("model output rejected")
		writeProblem(w, http.StatusInternalServerError, "Unreadable Model Output", "failed to generate recommendations, please try again")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func optDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, domain.ErrValidation)
	}
	return &t, nil
}

// ---- resorts ----

type resortsRequest struct {
	Regions   []string `json:"regions"`
	DateStart string   `json:"dateStart"`
	DateEnd   string   `json:"dateEnd"`
}

func (h *Handlers) resorts(w http.ResponseWriter, r *http.Request) {
	var req resortsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, err := optDate("dateStart", req.DateStart)
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := optDate("dateEnd", req.DateEnd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Snow.Resorts(r.Context(), app.ResortQuery{Regions: req.Regions, Start: start, End: end})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- lodging ----

type lodgingRequest struct {
	Resorts           []app.LodgingResort `json:"resorts"`
	GroupSize         int                 `json:"groupSize"`
	LodgingPreference string              `json:"lodgingPreference"`
	Nights            int                 `json:"nights"`
}

func (h *Handlers) lodging(w http.ResponseWriter, r *http.Request) {
	var req lodgingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pref, err := app.ParseLodgingPreference(req.LodgingPreference)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Lodging.Optimize(app.LodgingRequest{
		Resorts:    req.Resorts,
		GroupSize:  req.GroupSize,
		Preference: pref,
		Nights:     req.Nights,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lodging": out})
}

// ---- flights ----

type flightsRequest struct {
	Origins []struct {
		Airport   string `json:"airport"`
		GuestName string `json:"guestName"`
	} `json:"origins"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate"`
	Resorts       []string `json:"resorts"`
}

func (h *Handlers) flights(w http.ResponseWriter, r *http.Request) {
	var req flightsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fr := app.FlightRequest{Resorts: req.Resorts, DepartureDate: req.DepartureDate, ReturnDate: req.ReturnDate}
	for _, o := range req.Origins {
		origin := domain.FlightOrigin{Airport: o.Airport}
		if o.GuestName != "" {
			origin.GuestNames = []string{o.GuestName}
		}
		fr.Origins = append(fr.Origins, origin)
	}
	if err := fr.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Flights.Search(r.Context(), fr))
}

// ---- trips and recommendations ----

type saveTripRequest struct {
	Trip   app.TripInput    `json:"trip"`
	Guests []app.GuestInput `json:"guests"`
}

func (h *Handlers) saveTrip(w http.ResponseWriter, r *http.Request) {
	var req saveTripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	trip, err := h.Trips.SaveTrip(r.Context(), userFrom(r.Context()), req.Trip, req.Guests)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tripId": trip.ID, "nights": trip.Nights()})
}

type recommendRequest struct {
	TripID string `json:"tripId"`
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	set, err := h.Agg.Generate(r.Context(), req.TripID, app.OwnedBy(userFrom(r.Context())))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handlers) latest(w http.ResponseWriter, r *http.Request) {
	set, err := h.Q.LatestRecommendations(r.Context(), chi.URLParam(r, "id"), app.OwnedBy(userFrom(r.Context())))
	if err != nil {
		writeError(w, r, err)
		return
	}

	etag, body := calcETagAndBody(set)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write latest recommendations body")
	}
}

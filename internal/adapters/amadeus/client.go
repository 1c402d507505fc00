package amadeus

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ski_planner/internal/adapters/upstream"
	"ski_planner/internal/domain"
)

const DefaultBaseURL = "https://test.api.amadeus.com"

// Client implements domain.FlightProvider. Tokens are cached until 30s before expiry.
type Client struct {
	base     string
	id       string
	secret   string
	currency string
	max      int
	up       *upstream.Client
	now      func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	MaxOffers    int
}

func New(cfg Config, up *upstream.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.MaxOffers <= 0 {
		cfg.MaxOffers = 5
	}
	return &Client{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		id:       cfg.ClientID,
		secret:   cfg.ClientSecret,
		currency: cfg.Currency,
		max:      cfg.MaxOffers,
		up:       up,
		now:      time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) Token(ctx context.Context) (string, error) {
	if c.id == "" || c.secret == "" {
		return "", fmt.Errorf("amadeus: credentials not configured: %w", domain.ErrUpstreamAuth)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.id)
	form.Set("client_secret", c.secret)

	var tr tokenResponse
	err := c.up.Do(ctx, upstream.Request{
		Method:      http.MethodPost,
		URL:         c.base + "/v1/security/oauth2/token",
		Endpoint:    "token",
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}, &tr)
	if err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("amadeus: empty access token: %w", domain.ErrUpstreamAuth)
	}
	c.token = tr.AccessToken
	c.expiry = c.now().Add(time.Duration(tr.ExpiresIn-30) * time.Second)
	return c.token, nil
}

type offersResponse struct {
	Data []offerDTO `json:"data"`
}

type offerDTO struct {
	Price struct {
		Currency   string `json:"currency"`
		Total      string `json:"total"`
		GrandTotal string `json:"grandTotal"`
	} `json:"price"`
	Itineraries []itineraryDTO `json:"itineraries"`
}

type itineraryDTO struct {
	Duration string       `json:"duration"`
	Segments []segmentDTO `json:"segments"`
}

type segmentDTO struct {
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
	Departure   endpointDTO `json:"departure"`
	Arrival     endpointDTO `json:"arrival"`
}

type endpointDTO struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// SearchOffers returns normalized round-trip offers for one adult, cheapest first.
func (c *Client) SearchOffers(ctx context.Context, token string, q domain.FlightQuery) ([]domain.FlightOffer, error) {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	v.Set("returnDate", q.ReturnDate)
	v.Set("adults", "1")
	v.Set("nonStop", "false")
	v.Set("currencyCode", c.currency)
	v.Set("max", strconv.Itoa(c.max))

	hdr := http.Header{"Authorization": []string{"Bearer " + token}}
	var resp offersResponse
	if err := c.up.GetJSON(ctx, "flight-offers", c.base+"/v2/shopping/flight-offers?"+v.Encode(), hdr, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.FlightOffer, 0, len(resp.Data))
	for i, d := range resp.Data {
		o, err := normalize(d, c.currency)
		if err != nil {
			log.Warn().Err(err).Int("offer", i).Str("origin", q.Origin).Str("destination", q.Destination).Msg("skipping flight offer")
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if len(out) > c.max {
		out = out[:c.max]
	}
	return out, nil
}

// normalize fails for offers without a positive price.
func normalize(d offerDTO, fallbackCurrency string) (domain.FlightOffer, error) {
	price := d.Price.GrandTotal
	if price == "" {
		price = d.Price.Total
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return domain.FlightOffer{}, fmt.Errorf("amadeus: offer price %q unusable", price)
	}
	cur := d.Price.Currency
	if cur == "" {
		cur = fallbackCurrency
	}

	o := domain.FlightOffer{Price: p, Currency: cur, Airlines: []string{}}
	seen := map[string]bool{}
	for _, it := range d.Itineraries {
		for _, s := range it.Segments {
			if s.CarrierCode != "" && !seen[s.CarrierCode] {
				seen[s.CarrierCode] = true
				o.Airlines = append(o.Airlines, s.CarrierCode)
			}
		}
	}
	if len(d.Itineraries) > 0 {
		o.Outbound = leg(d.Itineraries[0])
	}
	if len(d.Itineraries) > 1 {
		o.Return = leg(d.Itineraries[1])
	}
	return o, nil
}

func leg(it itineraryDTO) domain.FlightLeg {
	l := domain.FlightLeg{Duration: it.Duration, Segments: make([]domain.FlightSegment, 0, len(it.Segments))}
	for _, s := range it.Segments {
		l.Segments = append(l.Segments, domain.FlightSegment{
			CarrierCode:      s.CarrierCode,
			FlightNumber:     s.CarrierCode + s.Number,
			DepartureAirport: s.Departure.IataCode,
			ArrivalAirport:   s.Arrival.IataCode,
			DepartureTime:    s.Departure.At,
			ArrivalTime:      s.Arrival.At,
		})
	}
	if n := len(it.Segments); n > 0 {
		l.Departure = it.Segments[0].Departure.At
		l.Arrival = it.Segments[n-1].Arrival.At
		l.Stops = n - 1
	}
	return l
}

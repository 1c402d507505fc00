package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ski_planner/internal/adapters/upstream"
	"ski_planner/internal/domain"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
)

// Client implements domain.ReasoningModel with a single generateContent call.
type Client struct {
	base  string
	model string
	key   string
	up    *upstream.Client
}

func New(base, model, key string, up *upstream.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{base: strings.TrimRight(base, "/"), model: model, key: key, up: up}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the system instruction and user payload and returns the
// first candidate's text.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("gemini: api key not configured: %w", domain.ErrUpstreamAuth)
	}
	req := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: system}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: user}}}},
		GenerationConfig:  generationConfig{Temperature: 0.7, ResponseMimeType: "application/json"},
	}
	hdr := http.Header{"X-Goog-Api-Key": []string{c.key}}
	u := fmt.Sprintf("%s/models/%s:generateContent", c.base, c.model)

	var resp generateResponse
	if err := c.up.PostJSON(ctx, "generate", u, hdr, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates: %w", domain.ErrUpstreamUnavailable)
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response: %w", domain.ErrUpstreamUnavailable)
	}
	return text, nil
}

package app

import (
	"encoding/json"
	"fmt"
	"regexp"

	"ski_planner/internal/domain"
)

const wantRecommendations = 3

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

type modelReply struct {
	Recommendations *[]domain.Recommendation `json:"recommendations"`
}

// DecodeRecommendations parses model output as strict JSON first, then as the
// first fenced code block. Output that neither strategy decodes, or that lacks
// a recommendations list, is ErrParse. Extra entries are trimmed to three and
// a short list is accepted; both cases come back as warnings.
func DecodeRecommendations(raw string) ([]domain.Recommendation, []string, error) {
	var reply modelReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		m := fencedBlock.FindStringSubmatch(raw)
		if m == nil {
			return nil, nil, fmt.Errorf("model output is not JSON: %w", domain.ErrParse)
		}
		reply = modelReply{}
		if err := json.Unmarshal([]byte(m[1]), &reply); err != nil {
			return nil, nil, fmt.Errorf("fenced model output is not JSON: %v: %w", err, domain.ErrParse)
		}
	}
	if reply.Recommendations == nil || len(*reply.Recommendations) == 0 {
		return nil, nil, fmt.Errorf("model output has no recommendations: %w", domain.ErrParse)
	}

	recs := *reply.Recommendations
	var warnings []string
	switch {
	case len(recs) > wantRecommendations:
		warnings = append(warnings, fmt.Sprintf("model returned %d recommendations; kept the first %d", len(recs), wantRecommendations))
		recs = recs[:wantRecommendations]
	case len(recs) < wantRecommendations:
		warnings = append(warnings, fmt.Sprintf("model returned only %d recommendations", len(recs)))
	}
	return recs, warnings, nil
}

package app

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ski_planner/internal/adapters/observability"
)

// degrade records a unit of work replaced by an empty result and returns a
// warn event for the caller to finish.
func degrade(stage string, err error) *zerolog.Event {
	observability.ObserveDegraded(stage, err)
	return log.Warn().Str("stage", stage).Err(err)
}

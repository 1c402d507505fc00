package app

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces successive upstream calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer allows one call per interval with no burst, so consecutive flight
// searches are at least interval apart.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return noPacer{}
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

type noPacer struct{}

func (noPacer) Wait(ctx context.Context) error { return ctx.Err() }

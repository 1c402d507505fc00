// Command recommend regenerates recommendations for a batch of trips, for
// example after a nightly snow refresh.
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ski_planner/internal/adapters/observability"
	"ski_planner/internal/bootstrap"
	"ski_planner/internal/shared"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(args []string) int {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	trips := fs.String("trips", "", "comma separated trip IDs (required)")
	workers := fs.Int("workers", 0, "concurrent trips; defaults to RECOMMEND_WORKERS")
	timeout := fs.Duration("timeout", 10*time.Minute, "overall deadline")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	shared.LoadDotEnv()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ids := splitIDs(*trips)
	if len(ids) == 0 {
		log.Error().Msg("no trips given; use -trips id1,id2")
		return exitUsage
	}
	if *workers <= 0 {
		*workers = cfg.RecommendWorkers
	}
	if *workers <= 0 {
		*workers = 1
	}

	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	logger.Info().Int("trips", len(ids)).Int("workers", *workers).Msg("recommend run starting")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stack, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return exitFailed
	}
	defer stack.Close()

	sem := semaphore.NewWeighted(int64(*workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Error().Err(err).Msg("deadline reached before all trips started")
			failed.Add(1)
			break
		}
		wg.Add(1)
		go func(tripID string) {
			defer wg.Done()
			defer sem.Release(1)

			set, err := stack.Agg.Generate(ctx, tripID)
			if err != nil {
				failed.Add(1)
				logger.Warn().Str("trip_id", tripID).Err(err).Msg("recommend failed")
				return
			}
			logger.Info().Str("trip_id", tripID).Str("set_id", set.ID).Int("warnings", len(set.Warnings)).Msg("recommend ok")
		}(id)
	}
	wg.Wait()

	stack.PurgeFlightCache(ctx)

	n := failed.Load()
	logger.Info().Int32("failed", n).Msg("recommend run completed")
	if n > 0 {
		return exitFailed
	}
	return exitOK
}

func splitIDs(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

package app

import (
	"context"
	"log"
	"time"

	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/report"
	"github.com/jswitzer/pulse/internal/state"
)

const (
	defaultPollInterval = 60 * time.Second
	maxBackoff          = 15 * time.Minute
	activityPollLimit   = 10
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while the upstream service keeps failing. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, builder *report.Builder, client *connect.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, builder, client)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles the base interval for every consecutive failure,
// capped at maxBackoff. Zero failures returns the base interval unchanged.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func refresh(ctx context.Context, store *state.Store, builder *report.Builder, client *connect.Client) {
	date := time.Now().Format("2006-01-02")

	health, err := builder.Snapshot(ctx, date)
	if err != nil {
		store.Update(date, nil, nil, err)
		log.Printf("health poll failed: %v", err)
		return
	}
	activities, err := client.FetchActivities(ctx, connect.ActivityQuery{Limit: activityPollLimit})
	if err != nil {
		store.Update(date, nil, nil, err)
		log.Printf("activity poll failed: %v", err)
		return
	}
	store.Update(date, health, activities, nil)
}

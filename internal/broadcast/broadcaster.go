// Package broadcast forwards every view state the controller applies to a
// message broker.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"newstv/internal/domain"
	"newstv/internal/metrics"
)

const defaultPublishTimeout = 5 * time.Second

type Stats struct {
	Published int
	Errors    int
}

type Broadcaster struct {
	source         StateSource
	publisher      Publisher
	logger         *slog.Logger
	publishTimeout time.Duration
}

func New(source StateSource, publisher Publisher, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		source:         source,
		publisher:      publisher,
		logger:         logger.With("component", "broadcaster"),
		publishTimeout: defaultPublishTimeout,
	}
}

// Run publishes the current snapshot and every later one until ctx is done
// or the stream ends. Each state goes out with the filter it was produced for. Publish failures are logged and counted,
// never returned.
func (b *Broadcaster) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	b.logger.Info("broadcaster started")

	for snap := range b.source.Snapshots(ctx) {
		if err := b.publish(ctx, snap); err != nil {
			stats.Errors++
			continue
		}
		stats.Published++
	}

	b.logger.Info("broadcaster stopped",
		"published", stats.Published,
		"errors", stats.Errors,
	)
	return stats, ctx.Err()
}

func (b *Broadcaster) publish(ctx context.Context, snap domain.Snapshot) error {
	publishCtx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	filter, state := snap.Filter, snap.State
	if err := b.publisher.Publish(publishCtx, filter, state); err != nil {
		metrics.StatePublishesTotal.WithLabelValues(state.Kind(), "error").Inc()
		b.logger.Error("publish view state failed",
			"kind", state.Kind(),
			"country", filter.Country,
			"category", filter.Category,
			"error", err,
		)
		return err
	}

	metrics.StatePublishesTotal.WithLabelValues(state.Kind(), "success").Inc()
	return nil
}

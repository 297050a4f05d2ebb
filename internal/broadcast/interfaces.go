package broadcast

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"newstv/internal/domain"
)

// StateSource is the controller as seen by the broadcaster.
type StateSource interface {
	Snapshots(ctx context.Context) <-chan domain.Snapshot
}

type Publisher interface {
	Publish(ctx context.Context, filter domain.Filter, state domain.ViewState) error
	Close() error
}

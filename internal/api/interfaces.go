package api

import (
	"context"

	"newstv/internal/domain"
)

// Controller is the part of the headline controller the HTTP surface drives.
type Controller interface {
	Filter() domain.Filter
	State() domain.ViewState
	Snapshot() domain.Snapshot
	Snapshots(ctx context.Context) <-chan domain.Snapshot
	SetCountry(code string)
	SetCategory(name string)
	Reload()
}

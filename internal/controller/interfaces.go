package controller

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"newstv/internal/domain"
)

// Provider retrieves top headlines for a country and category.
// Implementations must be safe for concurrent use.
type Provider interface {
	FetchHeadlines(ctx context.Context, country, category string) ([]domain.Headline, error)
}

// ProviderFunc adapts an ordinary function to Provider.
type ProviderFunc func(ctx context.Context, country, category string) ([]domain.Headline, error)

func (f ProviderFunc) FetchHeadlines(ctx context.Context, country, category string) ([]domain.Headline, error) {
	return f(ctx, country, category)
}

package services

import (
	"context"
	"sync"

	"villa-client/api"
	"villa-client/models"
	"villa-client/utils"
)

// Listings is the public listing view: it owns the current filter state and
// fetches matching villas, gated to Approved.
type Listings struct {
	client *api.Client
	logger *utils.Logger

	mu      sync.Mutex
	filters models.VillaFilters
}

// NewListings creates a Listings view with empty filters.
func NewListings(client *api.Client, logger *utils.Logger) *Listings {
	return &Listings{client: client, logger: logger}
}

// Filters returns the current filter state.
func (l *Listings) Filters() models.VillaFilters {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// Fetch retrieves villas for the current filters. Whatever the server
// returns, only Approved villas come back.
func (l *Listings) Fetch(ctx context.Context) ([]models.Villa, error) {
	villas, err := l.client.ListVillas(ctx, l.Filters())
	if err != nil {
		return nil, err
	}
	return ApprovedOnly(villas, l.logger), nil
}

// UpdateFilters merges the non-zero fields of partial into the filter state
// and retriggers the fetch.
func (l *Listings) UpdateFilters(ctx context.Context, partial models.VillaFilters) ([]models.Villa, error) {
	l.mu.Lock()
	l.filters = l.filters.Merge(partial)
	l.mu.Unlock()

	return l.Fetch(ctx)
}

// MostViewed fetches the short Approved-gated list shown on the homepage.
func (l *Listings) MostViewed(ctx context.Context) ([]models.Villa, error) {
	villas, err := l.client.ListVillas(ctx, models.VillaFilters{Limit: 3})
	if err != nil {
		return nil, err
	}
	return ApprovedOnly(villas, l.logger), nil
}

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"villa-client/models"
)

// ListVillas fetches villas matching the given filters. Zero-value filter
// fields are omitted from the query string.
func (c *Client) ListVillas(ctx context.Context, filters models.VillaFilters) ([]models.Villa, error) {
	values := url.Values{}
	if filters.Search != "" {
		values.Set("search", filters.Search)
	}
	if filters.Location != "" {
		values.Set("location", filters.Location)
	}
	if filters.MinPrice > 0 {
		values.Set("minPrice", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice > 0 {
		values.Set("maxPrice", strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64))
	}
	if filters.Limit > 0 {
		values.Set("limit", strconv.Itoa(filters.Limit))
	}

	var villas []models.Villa
	if err := c.get(ctx, "/api/villas"+queryString(values), &villas, false); err != nil {
		return nil, err
	}
	return villas, nil
}

// AdminListVillas fetches all villas regardless of status. Admin only.
func (c *Client) AdminListVillas(ctx context.Context) ([]models.Villa, error) {
	var villas []models.Villa
	if err := c.get(ctx, "/api/villas", &villas, true); err != nil {
		return nil, err
	}
	return villas, nil
}

// GetVilla fetches a single villa by id.
func (c *Client) GetVilla(ctx context.Context, id int64) (*models.Villa, error) {
	var villa models.Villa
	if err := c.get(ctx, fmt.Sprintf("/api/villas/%d", id), &villa, false); err != nil {
		return nil, err
	}
	return &villa, nil
}

// CreateVilla submits an owner's new villa. The server stores it as Pending.
func (c *Client) CreateVilla(ctx context.Context, req models.NewVillaRequest) (*models.Villa, error) {
	var villa models.Villa
	if err := c.post(ctx, "/api/villas", req, &villa, true); err != nil {
		return nil, err
	}
	return &villa, nil
}

// UpdateVillaStatus transitions a villa's approval status. Admin only.
func (c *Client) UpdateVillaStatus(ctx context.Context, id int64, status models.VillaStatus) error {
	body := map[string]models.VillaStatus{"status": status}
	return c.put(ctx, fmt.Sprintf("/api/villas/%d/status", id), body, nil, true)
}

// DeleteVilla removes a villa owned by the caller.
func (c *Client) DeleteVilla(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/villas/%d", id), true)
}

// MyVillas fetches the villas owned by the authenticated user.
func (c *Client) MyVillas(ctx context.Context) ([]models.Villa, error) {
	var villas []models.Villa
	if err := c.get(ctx, "/api/villas/owner/my-villas", &villas, true); err != nil {
		return nil, err
	}
	return villas, nil
}

// CheckAvailability asks the server whether the villa is free for the date
// range. Best-effort UX only: the server rejects conflicts on submission
// regardless of this answer.
func (c *Client) CheckAvailability(ctx context.Context, villaID int64, checkIn, checkOut string) (bool, error) {
	values := url.Values{}
	values.Set("checkIn", checkIn)
	values.Set("checkOut", checkOut)

	var resp struct {
		Available bool `json:"available"`
	}
	path := fmt.Sprintf("/api/villas/%d/availability", villaID)
	if err := c.get(ctx, path+queryString(values), &resp, true); err != nil {
		return false, err
	}
	return resp.Available, nil
}

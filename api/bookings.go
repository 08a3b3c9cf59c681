package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"villa-client/models"
)

// CreateBooking submits a reservation request with initial status Pending.
// The request carries an idempotency key so a duplicated submit cannot
// create two bookings.
func (c *Client) CreateBooking(ctx context.Context, req models.NewBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	if err := c.call(ctx, http.MethodPost, "/api/bookings", req, &booking, true, headers); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings fetches all bookings belonging to the authenticated user.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/api/bookings/my-bookings", &bookings, true); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AdminBookings fetches every booking on the platform. Admin only.
func (c *Client) AdminBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/api/bookings/admin-all", &bookings, true); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus transitions a booking to Confirmed or Cancelled.
// Admin only.
func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	body := map[string]models.BookingStatus{"status": status}
	return c.put(ctx, fmt.Sprintf("/api/bookings/%d/status", id), body, nil, true)
}

// SubmitPaymentProof attaches an uploaded receipt URL to the booking.
func (c *Client) SubmitPaymentProof(ctx context.Context, id int64, proofURL string) error {
	body := map[string]string{"paymentProofUrl": proofURL}
	return c.put(ctx, fmt.Sprintf("/api/bookings/%d/payment-proof", id), body, nil, true)
}

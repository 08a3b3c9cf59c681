package dashboard

import (
	"context"
	"sync"

	"villa-client/api"
	"villa-client/models"
	"villa-client/utils"
)

// FilterAll shows every villa regardless of status in the admin villa tab.
const FilterAll = "All"

// Admin is the admin dashboard view model: two independently fetched tabs,
// villas (filterable by status) and bookings (unfiltered). Status transitions
// PUT then refetch the full list; there is no optimistic local update.
type Admin struct {
	client *api.Client
	logger *utils.Logger

	mu          sync.Mutex
	villaFilter string
	villas      []models.Villa
	bookings    []models.Booking
}

// NewAdmin creates an Admin view with the default Pending villa filter.
func NewAdmin(client *api.Client, logger *utils.Logger) *Admin {
	return &Admin{
		client:      client,
		logger:      logger,
		villaFilter: string(models.VillaPending),
	}
}

// FetchVillas loads the full villa list from the server.
func (a *Admin) FetchVillas(ctx context.Context) error {
	villas, err := a.client.AdminListVillas(ctx)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.villas = villas
	a.mu.Unlock()
	return nil
}

// SetVillaFilter changes the status filter for the villa tab.
func (a *Admin) SetVillaFilter(filter string) {
	a.mu.Lock()
	a.villaFilter = filter
	a.mu.Unlock()
}

// VillaFilter returns the active status filter.
func (a *Admin) VillaFilter() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.villaFilter
}

// Villas returns the fetched villas narrowed to the active filter.
func (a *Admin) Villas() []models.Villa {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.villaFilter == FilterAll {
		return a.villas
	}
	out := make([]models.Villa, 0, len(a.villas))
	for _, v := range a.villas {
		if string(v.Status) == a.villaFilter {
			out = append(out, v)
		}
	}
	return out
}

// ApproveVilla transitions a villa to Approved, then refetches.
func (a *Admin) ApproveVilla(ctx context.Context, villaID int64) error {
	return a.setVillaStatus(ctx, villaID, models.VillaApproved)
}

// RejectVilla transitions a villa to Rejected, then refetches.
func (a *Admin) RejectVilla(ctx context.Context, villaID int64) error {
	return a.setVillaStatus(ctx, villaID, models.VillaRejected)
}

func (a *Admin) setVillaStatus(ctx context.Context, villaID int64, status models.VillaStatus) error {
	if err := a.client.UpdateVillaStatus(ctx, villaID, status); err != nil {
		return err
	}
	a.logger.Info("[admin] Villa %d status updated to %s", villaID, status)
	// Server-confirmed state over latency: refetch instead of patching the
	// local copy.
	return a.FetchVillas(ctx)
}

// FetchBookings loads every booking on the platform.
func (a *Admin) FetchBookings(ctx context.Context) error {
	bookings, err := a.client.AdminBookings(ctx)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.bookings = bookings
	a.mu.Unlock()
	return nil
}

// Bookings returns the fetched booking list.
func (a *Admin) Bookings() []models.Booking {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bookings
}

// ApproveBooking transitions a booking to Confirmed, then refetches.
func (a *Admin) ApproveBooking(ctx context.Context, bookingID int64) error {
	return a.setBookingStatus(ctx, bookingID, models.BookingConfirmed)
}

// RejectBooking transitions a booking to Cancelled, then refetches.
func (a *Admin) RejectBooking(ctx context.Context, bookingID int64) error {
	return a.setBookingStatus(ctx, bookingID, models.BookingCancelled)
}

func (a *Admin) setBookingStatus(ctx context.Context, bookingID int64, status models.BookingStatus) error {
	if err := a.client.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return err
	}
	a.logger.Info("[admin] Booking %d status updated to %s", bookingID, status)
	return a.FetchBookings(ctx)
}

// VillaActionEnabled reports whether a villa transition control is active.
// A control is disabled exactly when the record already holds the target.
func VillaActionEnabled(villa models.Villa, target models.VillaStatus) bool {
	return villa.Status != target
}

// BookingActionEnabled reports whether a booking transition control is
// active, same rule as villas.
func BookingActionEnabled(booking models.Booking, target models.BookingStatus) bool {
	return booking.Status != target
}

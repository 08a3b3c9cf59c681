package app

import (
	"context"
	"errors"
	"fmt"

	"villa-client/api"
	"villa-client/dashboard"
	"villa-client/flow"
	"villa-client/models"
)

// renderError prints the step's error state: the server message verbatim
// when it reported one, the generic network message otherwise.
func (a *App) renderError(err error) error {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "  ! %s\n", apiErr.Error())
	case errors.Is(err, api.ErrNetwork):
		fmt.Fprintln(a.out, "  ! Network error or server unavailable.")
	default:
		fmt.Fprintf(a.out, "  ! %v\n", err)
	}
	return err
}

func (a *App) renderStatic(title, body string) error {
	fmt.Fprintf(a.out, "== %s ==\n%s\n", title, body)
	return nil
}

func (a *App) renderHome(ctx context.Context, authenticated bool) error {
	fmt.Fprintln(a.out, "== SEWA VILLA ==")
	if authenticated {
		if user := a.store.User(); user != nil {
			fmt.Fprintf(a.out, "Welcome back, %s.\n", user.Name)
		}
	}

	fmt.Fprintln(a.out, "Loading most viewed villas...")
	villas, err := a.listings.MostViewed(ctx)
	if err != nil {
		return a.renderError(err)
	}
	if len(villas) == 0 {
		fmt.Fprintln(a.out, "No villas to show yet.")
		return nil
	}
	for _, v := range villas {
		fmt.Fprintf(a.out, "  [%d] %s — %s — Rp. %.0f/night\n", v.ID, v.Name, v.Location, v.Price)
	}
	return nil
}

func (a *App) renderOurVilla(ctx context.Context) error {
	fmt.Fprintln(a.out, "== OUR VILLA ==")
	fmt.Fprintln(a.out, "Loading villas...")

	villas, err := a.listings.Fetch(ctx)
	if err != nil {
		return a.renderError(err)
	}
	if len(villas) == 0 {
		fmt.Fprintln(a.out, "No approved villas found matching your criteria.")
		return nil
	}
	for _, v := range villas {
		fmt.Fprintf(a.out, "  [%d] %s — %s — Rp. %.0f/night — %s\n",
			v.ID, v.Name, v.Location, v.Price, a.images.Resolve(v.MainImage))
	}
	return nil
}

func (a *App) renderDetail(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return a.renderError(err)
	}

	fmt.Fprintln(a.out, "Loading villa details...")
	view, err := a.flow.ViewDetail(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Fprintln(a.out, "Villa not found.")
			return nil
		}
		return a.renderError(err)
	}

	v := view.Villa
	fmt.Fprintf(a.out, "== %s ==\n", v.Name)
	fmt.Fprintf(a.out, "Rp. %.0f / night — %s\n", v.Price, v.Location)
	fmt.Fprintln(a.out, v.Description)
	fmt.Fprintf(a.out, "Beds %d | Bathrooms %d | Area %s | Pool %d | Guests %d | Floor %d\n",
		v.Beds, v.Bathrooms, v.Area, v.Pool, v.Guests, v.Floor)
	for _, feature := range v.Features {
		fmt.Fprintf(a.out, "  - %s\n", feature)
	}
	fmt.Fprintf(a.out, "Main image: %s\n", view.MainImageURL)
	for _, img := range view.RoomImages {
		fmt.Fprintf(a.out, "  room image: %s\n", img)
	}
	fmt.Fprintf(a.out, "Book with: book %d <firstName> <lastName> <email> <phone> <nights> <checkIn> <checkOut>\n", v.ID)
	return nil
}

func (a *App) renderBookingStep(ctx context.Context, rawVillaID string) error {
	id, err := parseID(rawVillaID)
	if err != nil {
		return a.renderError(err)
	}

	// The booking page shows the villa card next to the form; load it so the
	// flow carries the record the submission needs.
	if _, err := a.flow.ViewDetail(ctx, id); err != nil {
		return a.renderError(err)
	}
	return a.renderStatic("ENTER YOUR DETAILS",
		fmt.Sprintf("Submit with: book %d <firstName> <lastName> <email> <phone> <nights> <checkIn> <checkOut>", id))
}

func (a *App) renderPayment(ctx context.Context, rawBookingID string) error {
	id, err := parseID(rawBookingID)
	if err != nil {
		return a.renderError(err)
	}

	fmt.Fprintln(a.out, "Loading payment details...")
	view, err := a.flow.Payment(ctx, id)
	if err != nil {
		if errors.Is(err, flow.ErrBookingNotFound) {
			fmt.Fprintln(a.out, "No booking details found for payment.")
			return nil
		}
		return a.renderError(err)
	}

	b := view.Booking
	fmt.Fprintln(a.out, "== RESERVATION SUMMARY ==")
	fmt.Fprintf(a.out, "Guest: %s %s | %s | %s\n", b.FirstName, b.LastName, b.Email, b.PhoneNumber)
	fmt.Fprintf(a.out, "Stay: %s, %s -> %s\n", b.Duration, b.CheckInDate, b.CheckOutDate)
	fmt.Fprintln(a.out, "== YOUR PRICE SUMMARY ==")
	fmt.Fprintf(a.out, "Villa Price  Rp. %.0f\n", view.BasePrice)
	fmt.Fprintf(a.out, "City Tax     Rp. %.0f\n", view.Tax)
	fmt.Fprintf(a.out, "Total        Rp. %.0f\n", view.Total)
	fmt.Fprintf(a.out, "Proceed with: go /confirmation/%d\n", b.ID)
	return nil
}

func (a *App) renderConfirmation(rawBookingID string) error {
	return a.renderStatic("UPLOAD FILE PAYMENT",
		fmt.Sprintf("Attach your receipt with: confirm %s <image-file>", rawBookingID))
}

func (a *App) renderInvoice(ctx context.Context, rawBookingID string) error {
	id, err := parseID(rawBookingID)
	if err != nil {
		return a.renderError(err)
	}

	fmt.Fprintln(a.out, "Loading invoice...")
	booking, err := a.flow.Invoice(ctx, id)
	if err != nil {
		if errors.Is(err, flow.ErrBookingNotFound) {
			fmt.Fprintln(a.out, "Invoice not found.")
			return nil
		}
		return a.renderError(err)
	}

	fmt.Fprintf(a.out, "== INVOICE #%d ==\n", booking.ID)
	fmt.Fprintf(a.out, "Guest: %s %s\n", booking.FirstName, booking.LastName)
	fmt.Fprintf(a.out, "Stay: %s, %s -> %s\n", booking.Duration, booking.CheckInDate, booking.CheckOutDate)
	fmt.Fprintf(a.out, "Base Rp. %.0f | Tax Rp. %.0f | Total Rp. %.0f\n",
		booking.TotalPrice-booking.Tax, booking.Tax, booking.TotalPrice)
	fmt.Fprintf(a.out, "Status: %s\n", booking.Status)
	if booking.PaymentProof != "" {
		fmt.Fprintf(a.out, "Payment proof: %s\n", a.images.Resolve(booking.PaymentProof))
	}
	fmt.Fprintf(a.out, "Export with: export %d\n", booking.ID)
	return nil
}

func (a *App) renderProfile(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading profile...")
	user, err := a.client.Profile(ctx)
	if err != nil {
		return a.renderError(err)
	}
	fmt.Fprintf(a.out, "== PROFILE ==\nName: %s\nEmail: %s\nPhone: %s\nRole: %s\n",
		user.Name, user.Email, user.Phone, user.Role)

	bookings, err := a.client.MyBookings(ctx)
	if err != nil {
		return a.renderError(err)
	}
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "No bookings yet.")
		return nil
	}
	for _, b := range bookings {
		fmt.Fprintf(a.out, "  [%d] villa %d, %s -> %s, Rp. %.0f (%s)\n",
			b.ID, b.VillaID, b.CheckInDate, b.CheckOutDate, b.TotalPrice, b.Status)
	}
	return nil
}

func (a *App) renderAdmin(ctx context.Context) error {
	fmt.Fprintln(a.out, "== ADMIN DASHBOARD ==")
	fmt.Fprintln(a.out, "Loading villas and bookings...")

	if err := a.admin.FetchVillas(ctx); err != nil {
		return a.renderError(err)
	}
	if err := a.admin.FetchBookings(ctx); err != nil {
		return a.renderError(err)
	}

	fmt.Fprintf(a.out, "-- Villas (filter: %s) --\n", a.admin.VillaFilter())
	villas := a.admin.Villas()
	if len(villas) == 0 {
		fmt.Fprintf(a.out, "No villas with status %q to manage.\n", a.admin.VillaFilter())
	}
	for _, v := range villas {
		fmt.Fprintf(a.out, "  [%d] %s — %s — owner %d — %s%s%s\n",
			v.ID, v.Name, v.Location, v.OwnerID, v.Status,
			actionTag("approve", dashboard.VillaActionEnabled(v, models.VillaApproved)),
			actionTag("reject", dashboard.VillaActionEnabled(v, models.VillaRejected)))
	}

	fmt.Fprintln(a.out, "-- Bookings --")
	bookings := a.admin.Bookings()
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "No bookings.")
	}
	for _, b := range bookings {
		fmt.Fprintf(a.out, "  [%d] villa %d — %s %s — Rp. %.0f — %s%s%s\n",
			b.ID, b.VillaID, b.FirstName, b.LastName, b.TotalPrice, b.Status,
			actionTag("approve", dashboard.BookingActionEnabled(b, models.BookingConfirmed)),
			actionTag("reject", dashboard.BookingActionEnabled(b, models.BookingCancelled)))
	}
	return nil
}

func actionTag(name string, enabled bool) string {
	if enabled {
		return " [" + name + "]"
	}
	return " [" + name + ": disabled]"
}

func (a *App) renderOwner(ctx context.Context) error {
	fmt.Fprintln(a.out, "== OWNER DASHBOARD ==")
	fmt.Fprintln(a.out, "Loading dashboard...")

	villas, err := a.owner.MyVillas(ctx)
	if err != nil {
		return a.renderError(err)
	}
	if len(villas) == 0 {
		fmt.Fprintln(a.out, "No villas added yet.")
		return nil
	}
	for _, v := range villas {
		fmt.Fprintf(a.out, "  [%d] %s — %s — %s\n", v.ID, v.Name, v.Location, v.Status)
	}
	return nil
}

func (a *App) renderAddVilla() error {
	return a.renderStatic("FILL YOUR DETAILS",
		"Submit with: add-villa <name>|<address>|<description>|<price>|<guests>|<main-image-file>[|extra-image,...]")
}

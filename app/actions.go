package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"villa-client/dashboard"
	"villa-client/models"
	"villa-client/storage"
)

// Login authenticates, persists the session, and navigates to the role's
// dashboard: admin -> /admin, owner -> /owner, guest -> /homepage. On
// failure nothing navigates and the server message is shown.
func (a *App) Login(ctx context.Context, email, password string) error {
	sess, err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return a.renderError(err)
	}
	if err := a.store.Login(*sess); err != nil {
		return a.renderError(err)
	}

	a.logger.Info("[app] Logged in as %s (%s)", sess.User.Email, sess.User.Role)
	switch sess.User.Role {
	case models.RoleAdmin:
		return a.Navigate(ctx, "/admin")
	case models.RoleOwner:
		return a.Navigate(ctx, "/owner")
	default:
		return a.Navigate(ctx, "/homepage")
	}
}

// Logout clears the session and returns to the public home page.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout()
	a.flow.Reset()
	return a.Navigate(ctx, "/")
}

// Register creates an account, then sends the user to the login page.
func (a *App) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := a.client.Register(ctx, req); err != nil {
		return a.renderError(err)
	}
	fmt.Fprintln(a.out, "Account created. Please log in.")
	return a.Navigate(ctx, "/login")
}

// Filter merges partial filter changes into the listing state and re-renders
// the listing page with the fresh fetch.
func (a *App) Filter(ctx context.Context, partial models.VillaFilters) error {
	if _, err := a.listings.UpdateFilters(ctx, partial); err != nil {
		return a.renderError(err)
	}
	return a.Navigate(ctx, "/our-villa")
}

// Book submits the booking form for the villa currently in the flow, then
// navigates to the payment step carrying the created booking.
func (a *App) Book(ctx context.Context, form models.BookingForm) error {
	booking, err := a.flow.SubmitBooking(ctx, form)
	if err != nil {
		return a.renderError(err)
	}
	return a.Navigate(ctx, fmt.Sprintf("/payment/%d", booking.ID))
}

// ConfirmProof uploads the receipt image for a booking and, on success,
// navigates to the invoice.
func (a *App) ConfirmProof(ctx context.Context, bookingID int64, imagePath string) error {
	if imagePath == "" {
		return a.renderError(fmt.Errorf("please upload your payment proof"))
	}
	file, err := os.Open(imagePath)
	if err != nil {
		return a.renderError(fmt.Errorf("open %q: %w", imagePath, err))
	}
	defer file.Close()

	if err := a.flow.ConfirmWithProof(ctx, bookingID, filepath.Base(imagePath), file); err != nil {
		return a.renderError(err)
	}
	fmt.Fprintln(a.out, "Payment proof uploaded. Your booking is being processed.")
	return a.Navigate(ctx, fmt.Sprintf("/invoice/%d", bookingID))
}

// ExportInvoice writes the booking's invoice row to a CSV under the export
// path.
func (a *App) ExportInvoice(ctx context.Context, bookingID int64) error {
	booking, err := a.flow.Invoice(ctx, bookingID)
	if err != nil {
		return a.renderError(err)
	}

	path := filepath.Join(a.cfg.ExportPath, fmt.Sprintf("invoice-%d.csv", bookingID))
	exporter, err := storage.NewCSVExporter(path)
	if err != nil {
		return a.renderError(err)
	}
	defer exporter.Close()

	if err := exporter.Export([]models.Booking{*booking}); err != nil {
		return a.renderError(err)
	}
	fmt.Fprintf(a.out, "Invoice saved to %s\n", path)
	return nil
}

// AdminSetVillaFilter switches the villa tab filter and re-renders.
func (a *App) AdminSetVillaFilter(ctx context.Context, filter string) error {
	a.admin.SetVillaFilter(filter)
	return a.Navigate(ctx, "/admin")
}

// AdminVillaAction applies approve/reject to a villa, guarding against
// redundant transitions the same way a disabled button would.
func (a *App) AdminVillaAction(ctx context.Context, villaID int64, approve bool) error {
	target := models.VillaApproved
	if !approve {
		target = models.VillaRejected
	}
	for _, v := range a.admin.Villas() {
		if v.ID == villaID && !dashboard.VillaActionEnabled(v, target) {
			fmt.Fprintf(a.out, "Villa %d is already %s.\n", villaID, target)
			return nil
		}
	}

	var err error
	if approve {
		err = a.admin.ApproveVilla(ctx, villaID)
	} else {
		err = a.admin.RejectVilla(ctx, villaID)
	}
	if err != nil {
		return a.renderError(err)
	}
	fmt.Fprintf(a.out, "Villa status updated to %s.\n", target)
	return a.Navigate(ctx, "/admin")
}

// AdminBookingAction applies approve/reject to a booking.
func (a *App) AdminBookingAction(ctx context.Context, bookingID int64, approve bool) error {
	target := models.BookingConfirmed
	if !approve {
		target = models.BookingCancelled
	}
	for _, b := range a.admin.Bookings() {
		if b.ID == bookingID && !dashboard.BookingActionEnabled(b, target) {
			fmt.Fprintf(a.out, "Booking %d is already %s.\n", bookingID, target)
			return nil
		}
	}

	var err error
	if approve {
		err = a.admin.ApproveBooking(ctx, bookingID)
	} else {
		err = a.admin.RejectBooking(ctx, bookingID)
	}
	if err != nil {
		return a.renderError(err)
	}
	fmt.Fprintf(a.out, "Booking status updated to %s.\n", target)
	return a.Navigate(ctx, "/admin")
}

// DeleteVilla removes an owned villa after the confirm callback agrees.
func (a *App) DeleteVilla(ctx context.Context, villaID int64, confirm func(int64) bool) error {
	deleted, err := a.owner.Delete(ctx, villaID, confirm)
	if err != nil {
		return a.renderError(err)
	}
	if !deleted {
		fmt.Fprintln(a.out, "Delete cancelled.")
		return nil
	}
	fmt.Fprintln(a.out, "Villa deleted successfully.")
	return a.Navigate(ctx, "/owner")
}

// EditVilla is the stubbed edit action.
func (a *App) EditVilla(villaID int64) error {
	err := a.owner.Edit(villaID)
	fmt.Fprintf(a.out, "%v\n", err)
	return nil
}

// AddVilla uploads the main image (required, first), then the extras
// best-effort, then submits the villa and returns to the owner dashboard.
func (a *App) AddVilla(ctx context.Context, form models.NewVillaRequest, mainImagePath string, extraImagePaths []string) error {
	if mainImagePath == "" {
		return a.renderError(fmt.Errorf("main image is required"))
	}
	mainFile, err := os.Open(mainImagePath)
	if err != nil {
		return a.renderError(fmt.Errorf("open %q: %w", mainImagePath, err))
	}
	defer mainFile.Close()
	main := &dashboard.ImageUpload{Name: filepath.Base(mainImagePath), Content: mainFile}

	var extras []dashboard.ImageUpload
	var opened []*os.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, p := range extraImagePaths {
		f, err := os.Open(p)
		if err != nil {
			a.logger.Warn("[app] Skipping extra image %q: %v", p, err)
			continue
		}
		opened = append(opened, f)
		extras = append(extras, dashboard.ImageUpload{Name: filepath.Base(p), Content: f})
	}

	villa, err := a.owner.AddVilla(ctx, form, main, extras)
	if err != nil {
		return a.renderError(err)
	}
	fmt.Fprintf(a.out, "Villa %q submitted (status %s).\n", villa.Name, villa.Status)
	return a.Navigate(ctx, "/owner")
}

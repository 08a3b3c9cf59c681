package flow

import (
	"context"
	"fmt"
	"io"
	"time"

	"villa-client/api"
	"villa-client/models"
)

// DetailView is the renderable villa detail: the record plus resolved
// image URLs.
type DetailView struct {
	Villa        models.Villa
	MainImageURL string
	RoomImages   []string
}

// ViewDetail fetches the villa and enters DetailViewed. Feature and image
// lists arrive already coerced at the API boundary.
func (f *Flow) ViewDetail(ctx context.Context, villaID int64) (*DetailView, error) {
	gen := f.generation()

	villa, err := f.client.GetVilla(ctx, villaID)
	if err != nil {
		return nil, err
	}

	if err := f.commit(gen, func() {
		f.state = DetailViewed
		f.villa = villa
		f.booking = nil
	}); err != nil {
		return nil, err
	}

	return &DetailView{
		Villa:        *villa,
		MainImageURL: f.images.Resolve(villa.MainImage),
		RoomImages:   f.images.ResolveAll(villa.Images),
	}, nil
}

// SubmitBooking validates the form, re-checks availability, computes the
// price, and POSTs the booking with initial status Pending. On success the
// flow enters RequestSubmitted carrying the created booking.
func (f *Flow) SubmitBooking(ctx context.Context, form models.BookingForm) (*models.Booking, error) {
	f.mu.Lock()
	gen := f.gen
	villa := f.villa
	sess := f.store.Current()
	f.mu.Unlock()

	if !sess.Valid() {
		return nil, fmt.Errorf("%w: you must be logged in to book a villa", ErrValidation)
	}
	if villa == nil {
		return nil, fmt.Errorf("%w: villa details are missing, go back and select a villa", ErrValidation)
	}
	if err := f.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: please fill all required fields: %v", ErrValidation, err)
	}
	if err := checkDateOrder(form.CheckInDate, form.CheckOutDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	quote, err := f.pricer.Price(villa.Price, form.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := f.commit(gen, func() { f.state = BookingFormFilled }); err != nil {
		return nil, err
	}

	// Best-effort pre-check. The server remains the arbiter; a conflicting
	// submission from another client can still pass here.
	available, err := f.client.CheckAvailability(ctx, villa.ID, form.CheckInDate, form.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUnavailable
	}

	// A reset may have landed while the server was answering; never POST a
	// booking into an abandoned flow.
	if !f.current(gen) {
		return nil, ErrStale
	}

	booking, err := f.client.CreateBooking(ctx, models.NewBookingRequest{
		UserID:       sess.User.ID,
		VillaID:      villa.ID,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
		Duration:     form.Duration,
		CheckInDate:  form.CheckInDate,
		CheckOutDate: form.CheckOutDate,
		TotalPrice:   quote.Total,
		Tax:          quote.Tax,
	})
	if err != nil {
		if api.IsConflict(err) {
			return nil, ErrUnavailable
		}
		return nil, err
	}

	if err := f.commit(gen, func() {
		f.state = RequestSubmitted
		f.booking = booking
	}); err != nil {
		return nil, err
	}

	f.logger.Info("[flow] Booking %d created for villa %d (%s, total %.0f)",
		booking.ID, villa.ID, booking.Duration, booking.TotalPrice)
	return booking, nil
}

// PaymentView is the renderable payment summary: the booking, its price
// breakdown, and the villa for display.
type PaymentView struct {
	Booking      models.Booking
	Villa        *models.Villa
	MainImageURL string
	BasePrice    float64
	Tax          float64
	Total        float64
}

// Payment loads the payment step for a booking. The booking carried forward
// from submission is used when present; otherwise it is recovered from
// my-bookings by id. No mutation happens at this step.
func (f *Flow) Payment(ctx context.Context, bookingID int64) (*PaymentView, error) {
	booking, err := f.ensureBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	view := &PaymentView{
		Booking:      *booking,
		BasePrice:    booking.TotalPrice - booking.Tax,
		Tax:          booking.Tax,
		Total:        booking.TotalPrice,
		MainImageURL: f.images.Resolve(""),
	}

	// Villa details are display-only here; their absence is not an error
	// state for the step.
	if villa, villaErr := f.client.GetVilla(ctx, booking.VillaID); villaErr == nil {
		view.Villa = villa
		view.MainImageURL = f.images.Resolve(villa.MainImage)
	} else {
		f.logger.Warn("[flow] Could not fetch villa %d for payment view: %v", booking.VillaID, villaErr)
	}

	return view, nil
}

// ConfirmWithProof uploads the receipt image, attaches its URL to the
// booking, and enters PaymentProofUploaded. A missing file is a validation
// error caught before any network call.
func (f *Flow) ConfirmWithProof(ctx context.Context, bookingID int64, filename string, file io.Reader) error {
	if filename == "" || file == nil {
		return fmt.Errorf("%w: please upload your payment proof", ErrValidation)
	}

	gen := f.generation()

	booking, err := f.ensureBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	proofURL, err := f.client.UploadImage(ctx, filename, file)
	if err != nil {
		return err
	}

	// Same rule as submission: an upload that finished after a reset must not
	// mutate the booking.
	if !f.current(gen) {
		return ErrStale
	}
	if err := f.client.SubmitPaymentProof(ctx, booking.ID, proofURL); err != nil {
		return err
	}

	if err := f.commit(gen, func() {
		f.state = PaymentProofUploaded
		booking.PaymentProof = proofURL
		f.booking = booking
	}); err != nil {
		return err
	}

	f.logger.Info("[flow] Payment proof attached to booking %d", booking.ID)
	return nil
}

// Invoice loads the read-only final summary for a booking.
func (f *Flow) Invoice(ctx context.Context, bookingID int64) (*models.Booking, error) {
	booking, err := f.ensureBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	if booking.Status == models.BookingConfirmed {
		f.state = Confirmed
	}
	f.mu.Unlock()
	return booking, nil
}

// ensureBooking returns the booking carried through the flow, or recovers it
// by re-querying my-bookings and matching by id. An unmatched id is an
// explicit ErrBookingNotFound, never a crash.
func (f *Flow) ensureBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	f.mu.Lock()
	carried := f.booking
	f.mu.Unlock()

	if carried != nil && carried.ID == bookingID {
		return carried, nil
	}

	if f.store.Token() == "" {
		return nil, fmt.Errorf("%w: booking id or authentication token is missing", ErrValidation)
	}

	bookings, err := f.client.MyBookings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			b := bookings[i]
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func checkDateOrder(checkIn, checkOut string) error {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return fmt.Errorf("check-in date %q is not a valid date", checkIn)
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return fmt.Errorf("check-out date %q is not a valid date", checkOut)
	}
	if !out.After(in) {
		return fmt.Errorf("check-out must be after check-in")
	}
	return nil
}

package flow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"villa-client/api"
	"villa-client/models"
	"villa-client/services"
	"villa-client/session"
	"villa-client/utils"
)

// State is a position in the booking flow. Transitions move strictly
// forward; Reset returns to Browsing.
type State int

const (
	Browsing State = iota
	DetailViewed
	BookingFormFilled
	RequestSubmitted
	PaymentProofUploaded
	Confirmed
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "Browsing"
	case DetailViewed:
		return "DetailViewed"
	case BookingFormFilled:
		return "BookingFormFilled"
	case RequestSubmitted:
		return "RequestSubmitted"
	case PaymentProofUploaded:
		return "PaymentProofUploaded"
	case Confirmed:
		return "Confirmed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrValidation marks failures caught before any network call. Shown
	// inline, never sent to the server.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable is returned when the villa is not free for the chosen
	// date range, whether the pre-check or the server's 409 said so.
	ErrUnavailable = errors.New("villa is not available for the selected dates")

	// ErrBookingNotFound is returned when a step's booking cannot be
	// recovered from my-bookings.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrStale marks a response that arrived after the flow moved on.
	// Callers discard it without rendering.
	ErrStale = errors.New("stale response discarded")
)

// Flow drives one guest's booking sequence:
// Browsing → DetailViewed → BookingFormFilled → RequestSubmitted →
// PaymentProofUploaded → Confirmed. Each transition is one page and one
// round trip.
type Flow struct {
	client   *api.Client
	store    *session.Store
	pricer   *services.Pricer
	images   *services.ImageResolver
	validate *validator.Validate
	logger   *utils.Logger

	mu      sync.Mutex
	gen     uint64
	state   State
	villa   *models.Villa
	booking *models.Booking
}

// New creates a Flow in the Browsing state.
func New(client *api.Client, store *session.Store, pricer *services.Pricer, images *services.ImageResolver, logger *utils.Logger) *Flow {
	return &Flow{
		client:   client,
		store:    store,
		pricer:   pricer,
		images:   images,
		validate: validator.New(),
		logger:   logger,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Booking returns the booking carried through the flow, if any.
func (f *Flow) Booking() *models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking
}

// Reset abandons the flow and returns to Browsing. In-flight responses from
// before the reset are discarded when they land.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.state = Browsing
	f.villa = nil
	f.booking = nil
}

// generation snapshots the guard counter before a fetch starts.
func (f *Flow) generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

// current reports whether gen is still the live generation. Checked before
// mutating requests so an abandoned flow never writes to the server.
func (f *Flow) current(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen == gen
}

// commit applies fn under the lock if the flow has not been reset since gen
// was captured. Late results from an abandoned flow return ErrStale.
func (f *Flow) commit(gen uint64, fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		f.logger.Debug("[flow] Discarding response from superseded generation %d", gen)
		return ErrStale
	}
	fn()
	return nil
}

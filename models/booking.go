package models

// BookingStatus is the lifecycle state of a reservation request.
// Pending until the admin confirms or cancels it after proof-of-payment.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking is a guest's reservation request for a villa over a date range.
// Dates travel as ISO yyyy-mm-dd strings, matching the wire format.
type Booking struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userId"`
	VillaID      int64         `json:"villaId"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	PhoneNumber  string        `json:"phoneNumber"`
	Duration     string        `json:"duration"`
	CheckInDate  string        `json:"checkInDate"`
	CheckOutDate string        `json:"checkOutDate"`
	TotalPrice   float64       `json:"totalPrice"`
	Tax          float64       `json:"tax"`
	Status       BookingStatus `json:"status"`
	PaymentProof string        `json:"paymentProof,omitempty"`
}

// BookingForm is the guest-entered detail set collected before submission.
// Validated client-side; never sent until it passes.
type BookingForm struct {
	FirstName    string `validate:"required"`
	LastName     string
	Email        string `validate:"required,email"`
	PhoneNumber  string `validate:"required"`
	Duration     string `validate:"required"`
	CheckInDate  string `validate:"required,datetime=2006-01-02"`
	CheckOutDate string `validate:"required,datetime=2006-01-02"`
}

// NewBookingRequest is the payload for POST /api/bookings.
type NewBookingRequest struct {
	UserID       int64   `json:"userId"`
	VillaID      int64   `json:"villaId"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phoneNumber"`
	Duration     string  `json:"duration"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	TotalPrice   float64 `json:"totalPrice"`
	Tax          float64 `json:"tax"`
}

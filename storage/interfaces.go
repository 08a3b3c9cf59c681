package storage

import "villa-client/models"

// BookingExporter is the interface any export backend must satisfy.
type BookingExporter interface {
	Export(bookings []models.Booking) error
	Close() error
}

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"villa-client/models"
)

// CSVExporter writes booking records to a CSV file. It backs the invoice
// download action and the admin booking export. Safe for concurrent use.
type CSVExporter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVExporter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVExporter(path string) (*CSVExporter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"booking_id", "villa_id", "guest", "email", "phone",
		"duration", "check_in", "check_out", "base_price", "tax", "total", "status", "payment_proof",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVExporter{file: f, writer: w}, nil
}

// Export appends the given bookings to the file.
func (c *CSVExporter) Export(bookings []models.Booking) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range bookings {
		row := []string{
			strconv.FormatInt(b.ID, 10),
			strconv.FormatInt(b.VillaID, 10),
			b.FirstName + " " + b.LastName,
			b.Email,
			b.PhoneNumber,
			b.Duration,
			b.CheckInDate,
			b.CheckOutDate,
			strconv.FormatFloat(b.TotalPrice-b.Tax, 'f', 2, 64),
			strconv.FormatFloat(b.Tax, 'f', 2, 64),
			strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
			string(b.Status),
			b.PaymentProof,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVExporter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

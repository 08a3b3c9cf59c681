package services

import (
	"testing"
)

func TestParseNights(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"2 Nights", 2, false},
		{"1 night", 1, false},
		{"10 Nights", 10, false},
		{" 3 Nights ", 3, false},
		{"0 Nights", 0, true},
		{"Nights", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseNights(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNights(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNights(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestPriceBreakdown(t *testing.T) {
	p := NewPricer(0.10)

	tests := []struct {
		perNight  float64
		duration  string
		wantBase  float64
		wantTax   float64
		wantTotal float64
	}{
		{1_000_000, "2 Nights", 2_000_000, 200_000, 2_200_000},
		{500_000, "1 Night", 500_000, 50_000, 550_000},
		{750_000, "4 Nights", 3_000_000, 300_000, 3_300_000},
	}

	for _, tt := range tests {
		quote, err := p.Price(tt.perNight, tt.duration)
		if err != nil {
			t.Errorf("Price(%v, %q) returned error: %v", tt.perNight, tt.duration, err)
			continue
		}
		if quote.BasePrice != tt.wantBase {
			t.Errorf("Price(%v, %q) base = %v; want %v", tt.perNight, tt.duration, quote.BasePrice, tt.wantBase)
		}
		if quote.Tax != tt.wantTax {
			t.Errorf("Price(%v, %q) tax = %v; want %v", tt.perNight, tt.duration, quote.Tax, tt.wantTax)
		}
		if quote.Total != tt.wantTotal {
			t.Errorf("Price(%v, %q) total = %v; want %v", tt.perNight, tt.duration, quote.Total, tt.wantTotal)
		}
		// The published invariants: total == base + tax, tax == 10% of base.
		if quote.Total != quote.BasePrice+quote.Tax {
			t.Errorf("total %v != base %v + tax %v", quote.Total, quote.BasePrice, quote.Tax)
		}
	}
}

func TestPriceRejectsBadDuration(t *testing.T) {
	p := NewPricer(0.10)
	if _, err := p.Price(1000, "a while"); err == nil {
		t.Error("expected error for unparsable duration, got nil")
	}
}

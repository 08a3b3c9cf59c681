package services

import (
	"fmt"
	"regexp"
	"strconv"
)

// nightsRegexp captures the leading integer of a duration string
// ("2 Nights", "1 night").
var nightsRegexp = regexp.MustCompile(`^\s*(\d+)`)

// Quote is the price breakdown for one stay.
type Quote struct {
	Nights    int
	BasePrice float64
	Tax       float64
	Total     float64
}

// Pricer computes booking totals at a fixed tax rate.
type Pricer struct {
	taxRate float64
}

// NewPricer creates a Pricer. The platform rate is 10%.
func NewPricer(taxRate float64) *Pricer {
	return &Pricer{taxRate: taxRate}
}

// ParseNights extracts the night count from a duration string. A duration
// with no leading integer, or zero nights, is a validation error.
func ParseNights(duration string) (int, error) {
	match := nightsRegexp.FindStringSubmatch(duration)
	if len(match) < 2 {
		return 0, fmt.Errorf("duration %q has no night count", duration)
	}
	nights, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("duration %q has no night count", duration)
	}
	if nights < 1 {
		return 0, fmt.Errorf("duration %q must cover at least one night", duration)
	}
	return nights, nil
}

// Price computes the quote for a per-night rate over the given duration:
// base = rate × nights, tax = rate share of base, total = base + tax.
func (p *Pricer) Price(perNight float64, duration string) (Quote, error) {
	nights, err := ParseNights(duration)
	if err != nil {
		return Quote{}, err
	}

	base := perNight * float64(nights)
	tax := base * p.taxRate
	return Quote{
		Nights:    nights,
		BasePrice: base,
		Tax:       tax,
		Total:     base + tax,
	}, nil
}

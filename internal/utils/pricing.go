package utils

import (
	"fmt"
	"math"

	"aquascout-backend/internal/domain"
)

// BookingQuote is the full priced breakdown for one booking, captured as a
// snapshot on the booking record at creation time.
type BookingQuote struct {
	BaseServiceFeePaise  int64
	TravelChargesPaise   int64
	GSTPaise             int64
	TotalAmountPaise     int64
	AdvanceAmountPaise   int64
	RemainingAmountPaise int64
}

// CalculateBookingQuote prices a survey booking from the subtotal, the travel
// distance, and the supplied rate configuration.
//
// Travel is charged per km beyond the free base radius. GST applies to
// subtotal plus travel. The advance is half the total rounded up, and the
// remaining amount is the exact complement, so the two installments always
// sum to the total regardless of rounding.
func CalculateBookingQuote(subtotalPaise int64, distanceKm float64, cfg domain.PricingSettings) (BookingQuote, error) {
	if subtotalPaise <= 0 {
		return BookingQuote{}, fmt.Errorf("%w: subtotal must be positive", domain.ErrValidation)
	}
	if distanceKm < 0 {
		return BookingQuote{}, fmt.Errorf("%w: distance cannot be negative", domain.ErrValidation)
	}
	if cfg.GSTPercentage < 0 || cfg.TravelChargePerKmPaise < 0 || cfg.BaseRadiusKm < 0 {
		return BookingQuote{}, fmt.Errorf("%w: pricing settings cannot be negative", domain.ErrValidation)
	}

	billableKm := distanceKm - cfg.BaseRadiusKm
	if billableKm < 0 {
		billableKm = 0
	}
	travel := int64(math.Round(billableKm * float64(cfg.TravelChargePerKmPaise)))
	gst := int64(math.Round(float64(subtotalPaise+travel) * cfg.GSTPercentage / 100))
	total := subtotalPaise + travel + gst

	advance := domain.BaseVendorShare(total) // same half-split rounding as the vendor share
	return BookingQuote{
		BaseServiceFeePaise:  subtotalPaise,
		TravelChargesPaise:   travel,
		GSTPaise:             gst,
		TotalAmountPaise:     total,
		AdvanceAmountPaise:   advance,
		RemainingAmountPaise: total - advance,
	}, nil
}

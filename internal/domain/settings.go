package domain

import "time"

// PricingSettings is the admin-editable rate configuration consumed by the
// pricing engine. The engine receives it as an explicit value; nothing reads
// these rates from global state.
type PricingSettings struct {
	TravelChargePerKmPaise int64     `json:"travel_charge_per_km_paise"`
	BaseRadiusKm           float64   `json:"base_radius_km"`
	GSTPercentage          float64   `json:"gst_percentage"`
	UpdatedOn              time.Time `json:"updated_on"`
}

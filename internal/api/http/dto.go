package http

import (
	"aquascout-backend/internal/domain"
)

type createBookingRequest struct {
	SiteAddress         string  `json:"site_address" validate:"required,min=5"`
	DistanceKm          float64 `json:"distance_km" validate:"gte=0"`
	BaseServiceFeePaise int64   `json:"base_service_fee_paise" validate:"gt=0"`
}

type assignVendorRequest struct {
	VendorID int32 `json:"vendor_id" validate:"required,gt=0"`
}

type uploadReportRequest struct {
	WaterFound      bool     `json:"water_found"`
	Images          []string `json:"images" validate:"dive,url"`
	ReportFileURL   string   `json:"report_file_url" validate:"omitempty,url"`
	MachineReadings string   `json:"machine_readings"`
	Notes           string   `json:"notes"`
}

type rejectionRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

type travelChargeRequest struct {
	AmountPaise int64  `json:"amount_paise" validate:"gt=0"`
	Reason      string `json:"reason" validate:"required"`
}

type borewellResultRequest struct {
	Outcome domain.BorewellOutcome `json:"outcome" validate:"required,oneof=SUCCESS FAILED"`
	Images  []string               `json:"images" validate:"dive,url"`
}

type borewellApprovalRequest struct {
	Approved bool `json:"approved"`
}

type settlementRequest struct {
	IncentivePaise int64 `json:"incentive_paise" validate:"gte=0"`
	PenaltyPaise   int64 `json:"penalty_paise" validate:"gte=0"`
	RefundPaise    int64 `json:"refund_paise" validate:"gte=0"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// paymentWebhookRequest is the gateway callback payload. Installment names
// the half being captured; replays of an already-captured installment are
// acknowledged without effect.
type paymentWebhookRequest struct {
	BookingID   int32  `json:"booking_id" validate:"required,gt=0"`
	Installment string `json:"installment" validate:"required,oneof=ADVANCE REMAINING"`
	TxnRef      string `json:"txn_ref" validate:"required"`
	AmountPaise int64  `json:"amount_paise" validate:"gt=0"`
	Status      string `json:"status" validate:"required,oneof=captured failed"`
}

type pricingSettingsRequest struct {
	TravelChargePerKmPaise int64   `json:"travel_charge_per_km_paise" validate:"gte=0"`
	BaseRadiusKm           float64 `json:"base_radius_km" validate:"gte=0"`
	GSTPercentage          float64 `json:"gst_percentage" validate:"gte=0,lte=100"`
}

type listResponse struct {
	Items      any   `json:"items"`
	TotalCount int32 `json:"total_count"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
}

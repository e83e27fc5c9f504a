package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending          BookingStatus = "PENDING"
	BookingStatusAssigned         BookingStatus = "ASSIGNED"
	BookingStatusAccepted         BookingStatus = "ACCEPTED"
	BookingStatusVisited          BookingStatus = "VISITED"
	BookingStatusReportUploaded   BookingStatus = "REPORT_UPLOADED"
	BookingStatusAwaitingPayment  BookingStatus = "AWAITING_PAYMENT"
	BookingStatusPaymentSuccess   BookingStatus = "PAYMENT_SUCCESS"
	BookingStatusBorewellUploaded BookingStatus = "BOREWELL_UPLOADED"
	BookingStatusAdminApproved    BookingStatus = "ADMIN_APPROVED"
	BookingStatusFinalSettlement  BookingStatus = "FINAL_SETTLEMENT"
	BookingStatusCompleted        BookingStatus = "COMPLETED"
	BookingStatusCancelled        BookingStatus = "CANCELLED"
)

type Role string

const (
	RoleUser   Role = "USER"
	RoleVendor Role = "VENDOR"
	RoleAdmin  Role = "ADMIN"
)

type BorewellOutcome string

const (
	BorewellOutcomeSuccess BorewellOutcome = "SUCCESS"
	BorewellOutcomeFailed  BorewellOutcome = "FAILED"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "PENDING"
	SettlementStatusCompleted SettlementStatus = "COMPLETED"
)

// Payment holds the priced amounts and installment flags for one booking.
// The priced amounts are snapshots captured at creation time; all later
// arithmetic uses these snapshots, not live pricing settings.
type Payment struct {
	BaseServiceFeePaise  int64 `json:"base_service_fee_paise"`
	TravelChargesPaise   int64 `json:"travel_charges_paise"`
	GSTPaise             int64 `json:"gst_paise"`
	TotalAmountPaise     int64 `json:"total_amount_paise"`
	AdvanceAmountPaise   int64 `json:"advance_amount_paise"`
	RemainingAmountPaise int64 `json:"remaining_amount_paise"`

	AdvancePaid     bool       `json:"advance_paid"`
	AdvancePaidAt   *time.Time `json:"advance_paid_at,omitempty"`
	AdvanceTxnRef   string     `json:"advance_txn_ref,omitempty"`
	RemainingPaid   bool       `json:"remaining_paid"`
	RemainingPaidAt *time.Time `json:"remaining_paid_at,omitempty"`
	RemainingTxnRef string     `json:"remaining_txn_ref,omitempty"`

	Settlement VendorSettlement `json:"vendor_settlement"`
}

// VendorSettlement is written exactly once, by ApplySettlement. Exactly one of
// the incentive or penalty+refund pairs is populated, never both.
type VendorSettlement struct {
	Status         SettlementStatus `json:"status"`
	AmountPaise    int64            `json:"amount_paise"`
	IncentivePaise *int64           `json:"incentive_paise,omitempty"`
	PenaltyPaise   *int64           `json:"penalty_paise,omitempty"`
	RefundPaise    *int64           `json:"refund_paise,omitempty"`
	SettledAt      *time.Time       `json:"settled_at,omitempty"`
}

type SurveyReport struct {
	WaterFound      bool       `json:"water_found"`
	Images          []string   `json:"images"`
	ReportFileURL   string     `json:"report_file_url,omitempty"`
	MachineReadings string     `json:"machine_readings,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type BorewellResult struct {
	Outcome    BorewellOutcome `json:"outcome"`
	Images     []string        `json:"images"`
	UploadedBy Role            `json:"uploaded_by"`
	UploadedAt time.Time       `json:"uploaded_at"`
	ApprovedAt *time.Time      `json:"approved_at,omitempty"`
}

type TravelChargeRequest struct {
	AmountPaise     int64          `json:"amount_paise"`
	Status          ApprovalStatus `json:"status"`
	Reason          string         `json:"reason"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	RequestedAt     time.Time      `json:"requested_at"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
}

// Booking is the canonical record for one survey request. It is the sole
// writer of its embedded sub-records: every mutation goes through one of the
// action methods below, which validate the guard against the current status
// before touching any field.
type Booking struct {
	ID          int32   `json:"id"`
	Reference   string  `json:"reference"`
	UserID      int32   `json:"user_id"`
	VendorID    *int32  `json:"vendor_id,omitempty"`
	SiteAddress string  `json:"site_address"`
	DistanceKm  float64 `json:"distance_km"`

	Status  BookingStatus `json:"status"`
	Version int32         `json:"version"`

	Payment        Payment              `json:"payment"`
	Report         *SurveyReport        `json:"report,omitempty"`
	BorewellResult *BorewellResult      `json:"borewell_result,omitempty"`
	TravelCharges  *TravelChargeRequest `json:"travel_charges_request,omitempty"`

	// Transition timestamps are append-only: stamped on first entry into the
	// corresponding status and never overwritten.
	AssignedAt         *time.Time `json:"assigned_at,omitempty"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	VisitedAt          *time.Time `json:"visited_at,omitempty"`
	ReportUploadedAt   *time.Time `json:"report_uploaded_at,omitempty"`
	BorewellUploadedAt *time.Time `json:"borewell_uploaded_at,omitempty"`
	AdminApprovedAt    *time.Time `json:"admin_approved_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelReason       string     `json:"cancel_reason,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Closed reports whether the booking reached a terminal status and is
// therefore read-only.
func (b *Booking) Closed() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

package domain

// Role-specific status views are derived from the canonical record on every
// read. They are never persisted; a stored copy could drift from canonical
// truth.

// UserStatus derives the status shown to the end user. The report window is
// hidden until the remaining installment is paid, and a vendor-submitted
// borewell result is not surfaced until the user's own action catches up.
func UserStatus(b *Booking) BookingStatus {
	switch b.Status {
	case BookingStatusReportUploaded, BookingStatusAwaitingPayment:
		if !b.Payment.RemainingPaid {
			return BookingStatusAwaitingPayment
		}
		return BookingStatusPaymentSuccess
	case BookingStatusBorewellUploaded:
		if b.BorewellResult != nil && b.BorewellResult.UploadedBy == RoleVendor {
			return BookingStatusPaymentSuccess
		}
		return BookingStatusBorewellUploaded
	default:
		return b.Status
	}
}

// VendorStatus derives the status shown to the vendor, which mirrors the
// canonical state. Settlement suppression is handled in the view, not here.
func VendorStatus(b *Booking) BookingStatus {
	return b.Status
}

// InstallmentView is one installment of the 50/50 payment split.
type InstallmentView struct {
	AmountPaise int64 `json:"amount_paise"`
	Paid        bool  `json:"paid"`
}

// UserBookingView is what the end user sees for one booking.
type UserBookingView struct {
	ID          int32         `json:"id"`
	Reference   string        `json:"reference"`
	Status      BookingStatus `json:"status"`
	SiteAddress string        `json:"site_address"`
	DistanceKm  float64       `json:"distance_km"`

	TotalAmountPaise int64           `json:"total_amount_paise"`
	GSTPaise         int64           `json:"gst_paise"`
	Advance          InstallmentView `json:"advance"`
	// FirstInstallment aliases the advance; some client flows address the
	// advance under this name.
	FirstInstallment InstallmentView `json:"first_installment"`
	Remaining        InstallmentView `json:"remaining"`

	// Report is withheld until the remaining installment is paid.
	Report         *SurveyReport   `json:"report,omitempty"`
	BorewellResult *BorewellResult `json:"borewell_result,omitempty"`
	RefundPaise    *int64          `json:"refund_paise,omitempty"`

	CreatedOn   string `json:"created_on"`
	CompletedOn string `json:"completed_on,omitempty"`
}

// VendorBookingView is what the assigned vendor sees for one booking.
type VendorBookingView struct {
	ID          int32         `json:"id"`
	Reference   string        `json:"reference"`
	Status      BookingStatus `json:"status"`
	SiteAddress string        `json:"site_address"`
	DistanceKm  float64       `json:"distance_km"`

	TotalAmountPaise int64 `json:"total_amount_paise"`
	RemainingPaid    bool  `json:"remaining_paid"`

	Report         *SurveyReport        `json:"report,omitempty"`
	BorewellResult *BorewellResult      `json:"borewell_result,omitempty"`
	TravelCharges  *TravelChargeRequest `json:"travel_charges_request,omitempty"`

	// Settlement detail is suppressed until the admin approves the borewell
	// result.
	Settlement *VendorSettlement `json:"settlement,omitempty"`

	CreatedOn string `json:"created_on"`
}

// ProjectUserView computes the user-facing view of one booking.
func ProjectUserView(b *Booking) UserBookingView {
	advance := InstallmentView{AmountPaise: b.Payment.AdvanceAmountPaise, Paid: b.Payment.AdvancePaid}
	v := UserBookingView{
		ID:               b.ID,
		Reference:        b.Reference,
		Status:           UserStatus(b),
		SiteAddress:      b.SiteAddress,
		DistanceKm:       b.DistanceKm,
		TotalAmountPaise: b.Payment.TotalAmountPaise,
		GSTPaise:         b.Payment.GSTPaise,
		Advance:          advance,
		FirstInstallment: advance,
		Remaining:        InstallmentView{AmountPaise: b.Payment.RemainingAmountPaise, Paid: b.Payment.RemainingPaid},
		CreatedOn:        b.CreatedOn.Format("2006-01-02"),
	}
	if b.Payment.RemainingPaid {
		v.Report = b.Report
	}
	if b.BorewellResult != nil && (b.BorewellResult.UploadedBy == RoleUser || b.BorewellResult.ApprovedAt != nil) {
		v.BorewellResult = b.BorewellResult
	}
	if b.Payment.Settlement.Status == SettlementStatusCompleted && b.Payment.Settlement.RefundPaise != nil {
		v.RefundPaise = b.Payment.Settlement.RefundPaise
	}
	if b.CompletedAt != nil {
		v.CompletedOn = b.CompletedAt.Format("2006-01-02")
	}
	return v
}

// ProjectVendorView computes the vendor-facing view of one booking.
func ProjectVendorView(b *Booking) VendorBookingView {
	v := VendorBookingView{
		ID:               b.ID,
		Reference:        b.Reference,
		Status:           VendorStatus(b),
		SiteAddress:      b.SiteAddress,
		DistanceKm:       b.DistanceKm,
		TotalAmountPaise: b.Payment.TotalAmountPaise,
		RemainingPaid:    b.Payment.RemainingPaid,
		Report:           b.Report,
		BorewellResult:   b.BorewellResult,
		TravelCharges:    b.TravelCharges,
		CreatedOn:        b.CreatedOn.Format("2006-01-02"),
	}
	if b.Status != BookingStatusCancelled && b.StatusReached(BookingStatusAdminApproved) {
		s := b.Payment.Settlement
		v.Settlement = &s
	}
	return v
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// minRejectionReasonLen is the shortest rejection reason accepted by any of
// the approval flows.
const minRejectionReasonLen = 10

func validateRejectionReason(reason string) error {
	if len(strings.TrimSpace(reason)) < minRejectionReasonLen {
		return fmt.Errorf("%w: rejection reason must be at least %d characters", ErrValidation, minRejectionReasonLen)
	}
	return nil
}

// AssignVendor attaches the vendor reference and moves PENDING -> ASSIGNED.
func (b *Booking) AssignVendor(vendorID int32, now time.Time) error {
	if vendorID <= 0 {
		return fmt.Errorf("%w: vendor reference is required", ErrValidation)
	}
	if b.Status != BookingStatusPending {
		return b.transitionFailure()
	}
	b.VendorID = &vendorID
	return b.applyTransition(BookingStatusAssigned, now)
}

// Accept moves ASSIGNED -> ACCEPTED. Only the assigned vendor may trigger it.
func (b *Booking) Accept(vendorID int32, now time.Time) error {
	if err := b.requireAssignedVendor(vendorID); err != nil {
		return err
	}
	if b.Status != BookingStatusAssigned {
		return b.transitionFailure()
	}
	return b.applyTransition(BookingStatusAccepted, now)
}

// MarkVisited moves ACCEPTED -> VISITED. Only the assigned vendor may trigger it.
func (b *Booking) MarkVisited(vendorID int32, now time.Time) error {
	if err := b.requireAssignedVendor(vendorID); err != nil {
		return err
	}
	if b.Status != BookingStatusAccepted {
		return b.transitionFailure()
	}
	return b.applyTransition(BookingStatusVisited, now)
}

// AttachReport records the vendor's survey report and advances
// VISITED -> REPORT_UPLOADED -> AWAITING_PAYMENT. The second hop is the
// automatic re-labeling for the payment-due window; both happen in one write.
// A re-upload after rejection replaces the report record wholesale.
func (b *Booking) AttachReport(vendorID int32, report SurveyReport, now time.Time) error {
	if err := b.requireAssignedVendor(vendorID); err != nil {
		return err
	}
	if len(report.Images) == 0 && report.ReportFileURL == "" {
		return fmt.Errorf("%w: report requires images or a report file", ErrValidation)
	}
	if b.Status != BookingStatusVisited {
		return b.transitionFailure()
	}
	report.UploadedAt = now
	report.ApprovedAt = nil
	report.RejectedAt = nil
	report.RejectionReason = ""
	b.Report = &report
	if err := b.applyTransition(BookingStatusReportUploaded, now); err != nil {
		return err
	}
	return b.applyTransition(BookingStatusAwaitingPayment, now)
}

// ApproveReport stamps admin approval on the uploaded report. Approval does
// not unlock anything further by itself; the remaining payment is gated on the
// payment flag, not on report approval.
func (b *Booking) ApproveReport(now time.Time) error {
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.Report == nil {
		return fmt.Errorf("%w: no report uploaded", ErrInvalidTransition)
	}
	if b.Report.ApprovedAt != nil || b.Report.RejectedAt != nil {
		return fmt.Errorf("%w: report already resolved", ErrInvalidTransition)
	}
	t := now
	b.Report.ApprovedAt = &t
	return nil
}

// RejectReport stamps the rejection pair on the report and returns the
// booking to VISITED so the vendor can upload a fresh report. Rejection is
// only possible while the remaining payment has not been confirmed.
func (b *Booking) RejectReport(reason string, now time.Time) error {
	if err := validateRejectionReason(reason); err != nil {
		return err
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.Report == nil {
		return fmt.Errorf("%w: no report uploaded", ErrInvalidTransition)
	}
	if b.Report.ApprovedAt != nil || b.Report.RejectedAt != nil {
		return fmt.Errorf("%w: report already resolved", ErrInvalidTransition)
	}
	if b.Status != BookingStatusReportUploaded && b.Status != BookingStatusAwaitingPayment {
		return b.transitionFailure()
	}
	t := now
	b.Report.RejectedAt = &t
	b.Report.RejectionReason = reason
	return b.applyTransition(BookingStatusVisited, now)
}

// ConfirmAdvancePayment records the gateway's capture of the advance
// installment. Replays with an already-paid advance are accepted no-ops.
func (b *Booking) ConfirmAdvancePayment(txnRef string, now time.Time) error {
	if b.Payment.AdvancePaid {
		return nil
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	t := now
	b.Payment.AdvancePaid = true
	b.Payment.AdvancePaidAt = &t
	b.Payment.AdvanceTxnRef = txnRef
	return nil
}

// ConfirmRemainingPayment records the gateway's capture of the remaining
// installment and moves AWAITING_PAYMENT -> PAYMENT_SUCCESS. Duplicate
// webhooks are accepted no-ops; out-of-order confirmations are rejected.
func (b *Booking) ConfirmRemainingPayment(txnRef string, now time.Time) error {
	if b.Payment.RemainingPaid {
		return nil
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.Status != BookingStatusAwaitingPayment {
		return b.transitionFailure()
	}
	t := now
	b.Payment.RemainingPaid = true
	b.Payment.RemainingPaidAt = &t
	b.Payment.RemainingTxnRef = txnRef
	return b.applyTransition(BookingStatusPaymentSuccess, now)
}

// RequestTravelCharges opens the one-shot travel-charge approval flow. It
// runs in parallel with the booking lifecycle and never blocks a status
// transition.
func (b *Booking) RequestTravelCharges(vendorID int32, amountPaise int64, reason string, now time.Time) error {
	if err := b.requireAssignedVendor(vendorID); err != nil {
		return err
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	if amountPaise <= 0 {
		return fmt.Errorf("%w: travel charge amount must be positive", ErrValidation)
	}
	if b.TravelCharges != nil {
		return fmt.Errorf("%w: travel charges already requested", ErrValidation)
	}
	b.TravelCharges = &TravelChargeRequest{
		AmountPaise: amountPaise,
		Status:      ApprovalStatusPending,
		Reason:      reason,
		RequestedAt: now,
	}
	return nil
}

// ApproveTravelCharges resolves the travel-charge request. One-shot:
// PENDING -> APPROVED, never reversed.
func (b *Booking) ApproveTravelCharges(now time.Time) error {
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.TravelCharges == nil || b.TravelCharges.Status != ApprovalStatusPending {
		return fmt.Errorf("%w: no pending travel charge request", ErrInvalidTransition)
	}
	t := now
	b.TravelCharges.Status = ApprovalStatusApproved
	b.TravelCharges.ResolvedAt = &t
	return nil
}

// RejectTravelCharges voids the requested amount. One-shot, never reversed.
func (b *Booking) RejectTravelCharges(reason string, now time.Time) error {
	if err := validateRejectionReason(reason); err != nil {
		return err
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.TravelCharges == nil || b.TravelCharges.Status != ApprovalStatusPending {
		return fmt.Errorf("%w: no pending travel charge request", ErrInvalidTransition)
	}
	t := now
	b.TravelCharges.Status = ApprovalStatusRejected
	b.TravelCharges.RejectionReason = reason
	b.TravelCharges.ResolvedAt = &t
	return nil
}

// AttachBorewellResult records the physical drilling outcome and moves
// PAYMENT_SUCCESS -> BOREWELL_UPLOADED. Submissions before the remaining
// payment is confirmed are rejected, not queued.
func (b *Booking) AttachBorewellResult(by Role, outcome BorewellOutcome, images []string, now time.Time) error {
	if outcome != BorewellOutcomeSuccess && outcome != BorewellOutcomeFailed {
		return fmt.Errorf("%w: borewell outcome must be SUCCESS or FAILED", ErrValidation)
	}
	if b.Status != BookingStatusPaymentSuccess {
		return b.transitionFailure()
	}
	b.BorewellResult = &BorewellResult{
		Outcome:    outcome,
		Images:     images,
		UploadedBy: by,
		UploadedAt: now,
	}
	return b.applyTransition(BookingStatusBorewellUploaded, now)
}

// ApproveBorewellResult confirms (possibly overriding) the submitted outcome
// and moves BOREWELL_UPLOADED -> ADMIN_APPROVED. A replayed approval with the
// result already stamped is an accepted no-op.
func (b *Booking) ApproveBorewellResult(confirmed BorewellOutcome, now time.Time) error {
	if b.BorewellResult != nil && b.BorewellResult.ApprovedAt != nil {
		return nil
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.Status != BookingStatusBorewellUploaded || b.BorewellResult == nil {
		return b.transitionFailure()
	}
	if confirmed != BorewellOutcomeSuccess && confirmed != BorewellOutcomeFailed {
		return fmt.Errorf("%w: borewell outcome must be SUCCESS or FAILED", ErrValidation)
	}
	t := now
	b.BorewellResult.Outcome = confirmed
	b.BorewellResult.ApprovedAt = &t
	return b.applyTransition(BookingStatusAdminApproved, now)
}

// ApplySettlement writes the computed settlement and performs the terminal
// ADMIN_APPROVED -> FINAL_SETTLEMENT -> COMPLETED hop. The settlement fields
// and the status advance land in the same row write, so neither can be
// observed without the other.
func (b *Booking) ApplySettlement(st VendorSettlement, now time.Time) error {
	if b.Payment.Settlement.Status != SettlementStatusPending {
		return ErrAlreadySettled
	}
	if b.Closed() {
		return ErrBookingClosed
	}
	if b.Status != BookingStatusAdminApproved {
		return b.transitionFailure()
	}
	b.Payment.Settlement = st
	if err := b.applyTransition(BookingStatusFinalSettlement, now); err != nil {
		return err
	}
	return b.applyTransition(BookingStatusCompleted, now)
}

// Cancel moves the booking to CANCELLED. Permitted only while the canonical
// status precedes BOREWELL_UPLOADED; irreversible.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Closed() {
		return ErrBookingClosed
	}
	if !CanTransition(b.Status, BookingStatusCancelled) {
		return ErrInvalidTransition
	}
	b.CancelReason = reason
	return b.applyTransition(BookingStatusCancelled, now)
}

func (b *Booking) requireAssignedVendor(vendorID int32) error {
	if b.VendorID == nil || *b.VendorID != vendorID {
		return ErrUnauthorized
	}
	return nil
}

func (b *Booking) transitionFailure() error {
	if b.Closed() {
		return ErrBookingClosed
	}
	return fmt.Errorf("%w: not allowed while status is %s", ErrInvalidTransition, b.Status)
}

package domain

import "time"

// allowedTransitions is the directed graph of permitted canonical status
// changes. CANCELLED is reachable only while the status precedes
// BOREWELL_UPLOADED, which the graph encodes by omission. The
// AWAITING_PAYMENT -> VISITED edge is the report-rejection path: the stamped
// report stays on the record but the vendor owes a fresh upload.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:          {BookingStatusAssigned, BookingStatusCancelled},
	BookingStatusAssigned:         {BookingStatusAccepted, BookingStatusCancelled},
	BookingStatusAccepted:         {BookingStatusVisited, BookingStatusCancelled},
	BookingStatusVisited:          {BookingStatusReportUploaded, BookingStatusCancelled},
	BookingStatusReportUploaded:   {BookingStatusAwaitingPayment, BookingStatusCancelled},
	BookingStatusAwaitingPayment:  {BookingStatusPaymentSuccess, BookingStatusVisited, BookingStatusCancelled},
	BookingStatusPaymentSuccess:   {BookingStatusBorewellUploaded, BookingStatusCancelled},
	BookingStatusBorewellUploaded: {BookingStatusAdminApproved},
	BookingStatusAdminApproved:    {BookingStatusFinalSettlement},
	BookingStatusFinalSettlement:  {BookingStatusCompleted},
	BookingStatusCompleted:        {},
	BookingStatusCancelled:        {},
}

// statusRank orders the canonical lifecycle for precedence checks. CANCELLED
// has no rank; it sits outside the forward chain.
var statusRank = map[BookingStatus]int{
	BookingStatusPending:          0,
	BookingStatusAssigned:         1,
	BookingStatusAccepted:         2,
	BookingStatusVisited:          3,
	BookingStatusReportUploaded:   4,
	BookingStatusAwaitingPayment:  5,
	BookingStatusPaymentSuccess:   6,
	BookingStatusBorewellUploaded: 7,
	BookingStatusAdminApproved:    8,
	BookingStatusFinalSettlement:  9,
	BookingStatusCompleted:        10,
}

// CanTransition reports whether from -> to is a permitted status change.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StatusReached reports whether the canonical status is at or past the given
// milestone on the forward chain.
func (b *Booking) StatusReached(s BookingStatus) bool {
	cur, ok := statusRank[b.Status]
	if !ok {
		return false
	}
	return cur >= statusRank[s]
}

// applyTransition moves the booking to the target status and stamps the
// matching transition timestamp on first entry. Timestamps are never
// overwritten on re-entry (a rejected report sends the booking back to
// VISITED; visitedAt keeps its original value).
func (b *Booking) applyTransition(to BookingStatus, now time.Time) error {
	if !CanTransition(b.Status, to) {
		if b.Closed() {
			return ErrBookingClosed
		}
		return ErrInvalidTransition
	}
	b.Status = to

	stamp := func(field **time.Time) {
		if *field == nil {
			t := now
			*field = &t
		}
	}
	switch to {
	case BookingStatusAssigned:
		stamp(&b.AssignedAt)
	case BookingStatusAccepted:
		stamp(&b.AcceptedAt)
	case BookingStatusVisited:
		stamp(&b.VisitedAt)
	case BookingStatusReportUploaded:
		stamp(&b.ReportUploadedAt)
	case BookingStatusBorewellUploaded:
		stamp(&b.BorewellUploadedAt)
	case BookingStatusAdminApproved:
		stamp(&b.AdminApprovedAt)
	case BookingStatusCompleted:
		stamp(&b.CompletedAt)
	case BookingStatusCancelled:
		stamp(&b.CancelledAt)
	}
	return nil
}

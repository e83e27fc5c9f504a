package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("Forward Chain", func(t *testing.T) {
		chain := []BookingStatus{
			BookingStatusPending,
			BookingStatusAssigned,
			BookingStatusAccepted,
			BookingStatusVisited,
			BookingStatusReportUploaded,
			BookingStatusAwaitingPayment,
			BookingStatusPaymentSuccess,
			BookingStatusBorewellUploaded,
			BookingStatusAdminApproved,
			BookingStatusFinalSettlement,
			BookingStatusCompleted,
		}
		for i := 0; i < len(chain)-1; i++ {
			assert.True(t, CanTransition(chain[i], chain[i+1]),
				"%s -> %s should be allowed", chain[i], chain[i+1])
		}
	})

	t.Run("No Skipping", func(t *testing.T) {
		assert.False(t, CanTransition(BookingStatusPending, BookingStatusAccepted))
		assert.False(t, CanTransition(BookingStatusAssigned, BookingStatusVisited))
		assert.False(t, CanTransition(BookingStatusVisited, BookingStatusAwaitingPayment))
		assert.False(t, CanTransition(BookingStatusPaymentSuccess, BookingStatusAdminApproved))
	})

	t.Run("No Backward Moves", func(t *testing.T) {
		assert.False(t, CanTransition(BookingStatusAccepted, BookingStatusAssigned))
		assert.False(t, CanTransition(BookingStatusCompleted, BookingStatusFinalSettlement))
	})

	t.Run("Report Rejection Edge", func(t *testing.T) {
		assert.True(t, CanTransition(BookingStatusAwaitingPayment, BookingStatusVisited))
	})

	t.Run("Cancellation Window", func(t *testing.T) {
		cancellable := []BookingStatus{
			BookingStatusPending, BookingStatusAssigned, BookingStatusAccepted,
			BookingStatusVisited, BookingStatusReportUploaded,
			BookingStatusAwaitingPayment, BookingStatusPaymentSuccess,
		}
		for _, s := range cancellable {
			assert.True(t, CanTransition(s, BookingStatusCancelled), "%s should be cancellable", s)
		}
		locked := []BookingStatus{
			BookingStatusBorewellUploaded, BookingStatusAdminApproved,
			BookingStatusFinalSettlement, BookingStatusCompleted, BookingStatusCancelled,
		}
		for _, s := range locked {
			assert.False(t, CanTransition(s, BookingStatusCancelled), "%s should not be cancellable", s)
		}
	})

	t.Run("Terminal States", func(t *testing.T) {
		for _, to := range []BookingStatus{
			BookingStatusPending, BookingStatusAssigned, BookingStatusCompleted,
		} {
			assert.False(t, CanTransition(BookingStatusCompleted, to))
			assert.False(t, CanTransition(BookingStatusCancelled, to))
		}
	})
}

func TestStatusReached(t *testing.T) {
	b := &Booking{Status: BookingStatusPaymentSuccess}
	assert.True(t, b.StatusReached(BookingStatusVisited))
	assert.True(t, b.StatusReached(BookingStatusPaymentSuccess))
	assert.False(t, b.StatusReached(BookingStatusAdminApproved))

	cancelled := &Booking{Status: BookingStatusCancelled}
	assert.False(t, cancelled.StatusReached(BookingStatusPending))
}

func TestApplyTransition_TimestampsAppendOnly(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	b := &Booking{Status: BookingStatusAwaitingPayment}
	visited := first
	b.VisitedAt = &visited

	// Report rejection sends the booking back to VISITED; the original stamp
	// must survive.
	err := b.applyTransition(BookingStatusVisited, later)
	assert.NoError(t, err)
	assert.Equal(t, first, *b.VisitedAt)
}

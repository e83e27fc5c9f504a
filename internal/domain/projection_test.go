package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatus(t *testing.T) {
	t.Run("Report Window Shows Awaiting Payment", func(t *testing.T) {
		b := bookingAt(t, BookingStatusAwaitingPayment)
		assert.Equal(t, BookingStatusAwaitingPayment, UserStatus(b))

		b.Status = BookingStatusReportUploaded
		assert.Equal(t, BookingStatusAwaitingPayment, UserStatus(b))
	})

	t.Run("Vendor Borewell Upload Hidden From User", func(t *testing.T) {
		b := bookingAt(t, BookingStatusPaymentSuccess)
		require.NoError(t, b.AttachBorewellResult(RoleVendor, BorewellOutcomeSuccess, nil, testNow))
		assert.Equal(t, BookingStatusPaymentSuccess, UserStatus(b))
	})

	t.Run("User Borewell Upload Visible", func(t *testing.T) {
		b := bookingAt(t, BookingStatusPaymentSuccess)
		require.NoError(t, b.AttachBorewellResult(RoleUser, BorewellOutcomeSuccess, nil, testNow))
		assert.Equal(t, BookingStatusBorewellUploaded, UserStatus(b))
	})

	t.Run("Other Statuses Pass Through", func(t *testing.T) {
		for _, s := range []BookingStatus{
			BookingStatusPending, BookingStatusAccepted, BookingStatusCompleted, BookingStatusCancelled,
		} {
			b := &Booking{Status: s}
			assert.Equal(t, s, UserStatus(b))
		}
	})
}

func TestProjectUserView(t *testing.T) {
	t.Run("Report Withheld Until Paid", func(t *testing.T) {
		b := bookingAt(t, BookingStatusAwaitingPayment)
		v := ProjectUserView(b)
		assert.Nil(t, v.Report)

		require.NoError(t, b.ConfirmRemainingPayment("txn", testNow))
		v = ProjectUserView(b)
		assert.NotNil(t, v.Report)
	})

	t.Run("First Installment Aliases Advance", func(t *testing.T) {
		b := bookingAt(t, BookingStatusAssigned)
		require.NoError(t, b.ConfirmAdvancePayment("txn-a", testNow))
		v := ProjectUserView(b)
		assert.Equal(t, v.Advance, v.FirstInstallment)
		assert.True(t, v.Advance.Paid)
		assert.Equal(t, int64(64900), v.Advance.AmountPaise)
	})

	t.Run("Installments Sum To Total", func(t *testing.T) {
		b := bookingAt(t, BookingStatusPending)
		v := ProjectUserView(b)
		assert.Equal(t, v.TotalAmountPaise, v.Advance.AmountPaise+v.Remaining.AmountPaise)
	})

	t.Run("Refund Surfaced After Settlement", func(t *testing.T) {
		b := bookingAt(t, BookingStatusPaymentSuccess)
		require.NoError(t, b.AttachBorewellResult(RoleUser, BorewellOutcomeFailed, nil, testNow))
		require.NoError(t, b.ApproveBorewellResult(BorewellOutcomeFailed, testNow))
		st, err := ComputeSettlement(b.Payment.TotalAmountPaise, b.Payment.RemainingAmountPaise,
			BorewellOutcomeFailed, SettlementInput{RefundPaise: 20000}, testNow)
		require.NoError(t, err)
		require.NoError(t, b.ApplySettlement(st, testNow))

		v := ProjectUserView(b)
		require.NotNil(t, v.RefundPaise)
		assert.Equal(t, int64(20000), *v.RefundPaise)
		assert.NotEmpty(t, v.CompletedOn)
	})
}

func TestProjectVendorView(t *testing.T) {
	t.Run("Settlement Suppressed Before Approval", func(t *testing.T) {
		b := bookingAt(t, BookingStatusBorewellUploaded)
		v := ProjectVendorView(b)
		assert.Nil(t, v.Settlement)
	})

	t.Run("Settlement Visible After Approval", func(t *testing.T) {
		b := bookingAt(t, BookingStatusAdminApproved)
		v := ProjectVendorView(b)
		require.NotNil(t, v.Settlement)
		assert.Equal(t, SettlementStatusPending, v.Settlement.Status)
	})

	t.Run("Cancelled Booking Has No Settlement View", func(t *testing.T) {
		b := bookingAt(t, BookingStatusPaymentSuccess)
		require.NoError(t, b.Cancel("site inaccessible after floods", testNow))
		v := ProjectVendorView(b)
		assert.Nil(t, v.Settlement)
		assert.Equal(t, BookingStatusCancelled, v.Status)
	})

	t.Run("Canonical Status Passes Through", func(t *testing.T) {
		b := bookingAt(t, BookingStatusAwaitingPayment)
		v := ProjectVendorView(b)
		assert.Equal(t, BookingStatusAwaitingPayment, v.Status)
		assert.False(t, v.RemainingPaid)
	})
}

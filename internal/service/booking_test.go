package service

import (
	"context"
	"testing"
	"time"

	"aquascout-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	bookingRepo *MockBookingRepo
	userRepo    *MockUserRepo
	settings    *MockSettingsRepo
	ledger      *MockLedgerRepo
	notes       *MockNotificationRepo
	email       *MockEmailService
	svc         BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(MockBookingRepo),
		userRepo:    new(MockUserRepo),
		settings:    new(MockSettingsRepo),
		ledger:      new(MockLedgerRepo),
		notes:       new(MockNotificationRepo),
		email:       new(MockEmailService),
	}
	f.svc = NewBookingService(f.bookingRepo, f.userRepo, f.settings, f.ledger, f.notes, f.email)
	return f
}

// allowSideEffects stubs the best-effort notification and email paths so
// lifecycle tests can focus on the booking itself.
func (f *bookingFixture) allowSideEffects() {
	f.notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Maybe()
	f.userRepo.On("GetByID", mock.Anything, mock.AnythingOfType("int32")).
		Return(&domain.User{ID: 1, Email: "someone@test.com", Name: "Someone"}, nil).Maybe()
	f.email.On("SendBookingAssigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendVisitUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendPaymentDue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendReportDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendSettlementNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// bookingInState builds a booking walked forward to the requested status.
func bookingInState(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	vendorID := int32(7)
	b := &domain.Booking{
		ID:          42,
		Reference:   "ref-42",
		UserID:      3,
		SiteAddress: "12 Canal Road, Madurai",
		DistanceKm:  30,
		Status:      domain.BookingStatusPending,
		Version:     1,
		Payment: domain.Payment{
			TotalAmountPaise:     129800,
			AdvanceAmountPaise:   64900,
			RemainingAmountPaise: 64900,
			Settlement:           domain.VendorSettlement{Status: domain.SettlementStatusPending},
		},
	}
	report := domain.SurveyReport{WaterFound: true, Images: []string{"https://files.example.com/site.jpg"}}
	steps := []func() error{
		func() error { return b.AssignVendor(vendorID, fixedNow) },
		func() error { return b.Accept(vendorID, fixedNow) },
		func() error { return b.MarkVisited(vendorID, fixedNow) },
		func() error { return b.AttachReport(vendorID, report, fixedNow) },
		func() error { return b.ConfirmRemainingPayment("txn-rem", fixedNow) },
		func() error { return b.AttachBorewellResult(domain.RoleVendor, domain.BorewellOutcomeSuccess, nil, fixedNow) },
		func() error { return b.ApproveBorewellResult(domain.BorewellOutcomeSuccess, fixedNow) },
	}
	for _, step := range steps {
		if b.Status == status {
			return b
		}
		require.NoError(t, step())
	}
	require.Equal(t, status, b.Status)
	return b
}

func TestBookingService_CreateBooking(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	f.settings.On("GetPricing", ctx).Return(&domain.PricingSettings{
		TravelChargePerKmPaise: 2000,
		BaseRadiusKm:           25,
		GSTPercentage:          18,
	}, nil)
	f.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	b, err := f.svc.CreateBooking(ctx, 3, "12 Canal Road, Madurai", 30, 100000)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, int64(10000), b.Payment.TravelChargesPaise)
	assert.Equal(t, int64(19800), b.Payment.GSTPaise)
	assert.Equal(t, int64(129800), b.Payment.TotalAmountPaise)
	assert.Equal(t, b.Payment.TotalAmountPaise, b.Payment.AdvanceAmountPaise+b.Payment.RemainingAmountPaise)
	assert.Equal(t, domain.SettlementStatusPending, b.Payment.Settlement.Status)
}

func TestBookingService_AssignVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Non Vendor", func(t *testing.T) {
		f := newBookingFixture()
		f.userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Role: domain.RoleUser}, nil)

		_, err := f.svc.AssignVendor(ctx, 42, 3)
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.bookingRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Success", func(t *testing.T) {
		f := newBookingFixture()
		// The vendor lookup expectation must precede the catch-all stubs.
		f.userRepo.On("GetByID", ctx, int32(7)).
			Return(&domain.User{ID: 7, Role: domain.RoleVendor, Email: "vendor@test.com", Name: "Vendor"}, nil)
		f.allowSideEffects()
		b := bookingInState(t, domain.BookingStatusPending)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)
		f.bookingRepo.On("Update", ctx, b).Return(nil)

		res, err := f.svc.AssignVendor(ctx, 42, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusAssigned, res.Status)
	})
}

func TestBookingService_GetBooking_Authorization(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	b := bookingInState(t, domain.BookingStatusAssigned)
	f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)

	_, err := f.svc.GetBooking(ctx, 99, domain.RoleUser, 42)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.GetBooking(ctx, 99, domain.RoleVendor, 42)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	got, err := f.svc.GetBooking(ctx, 3, domain.RoleUser, 42)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.GetBooking(ctx, 1, domain.RoleAdmin, 42)
	assert.NoError(t, err)
}

func TestBookingService_ConfirmAdvancePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Amount Mismatch", func(t *testing.T) {
		f := newBookingFixture()
		b := bookingInState(t, domain.BookingStatusAssigned)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)

		_, err := f.svc.ConfirmAdvancePayment(ctx, 42, "txn-a", 100)
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.bookingRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Capture Writes Ledger Once", func(t *testing.T) {
		f := newBookingFixture()
		f.allowSideEffects()
		b := bookingInState(t, domain.BookingStatusAssigned)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)
		f.bookingRepo.On("Update", ctx, b).Return(nil)
		f.ledger.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.LedgerEntryAdvancePayment &&
				e.AmountPaise == -64900 &&
				e.PartyID == b.UserID &&
				e.TxnRef == "txn-a"
		})).Return(nil).Once()

		res, err := f.svc.ConfirmAdvancePayment(ctx, 42, "txn-a", 64900)
		require.NoError(t, err)
		assert.True(t, res.Payment.AdvancePaid)

		// Replayed webhook: accepted, no second ledger entry.
		res, err = f.svc.ConfirmAdvancePayment(ctx, 42, "txn-a-replay", 64900)
		require.NoError(t, err)
		assert.Equal(t, "txn-a", res.Payment.AdvanceTxnRef)
		f.ledger.AssertNumberOfCalls(t, "CreateEntry", 1)
	})
}

func TestBookingService_ConfirmRemainingPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Unlocks Report And Replays Safely", func(t *testing.T) {
		f := newBookingFixture()
		f.allowSideEffects()
		b := bookingInState(t, domain.BookingStatusAwaitingPayment)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)
		f.bookingRepo.On("Update", ctx, b).Return(nil)
		f.ledger.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.LedgerEntryRemainingPayment && e.AmountPaise == -64900
		})).Return(nil).Once()

		res, err := f.svc.ConfirmRemainingPayment(ctx, 42, "txn-r", 64900)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPaymentSuccess, res.Status)

		res, err = f.svc.ConfirmRemainingPayment(ctx, 42, "txn-r-replay", 64900)
		require.NoError(t, err)
		assert.Equal(t, "txn-r", res.Payment.RemainingTxnRef)
		f.ledger.AssertNumberOfCalls(t, "CreateEntry", 1)
	})

	t.Run("Out Of Order Rejected", func(t *testing.T) {
		f := newBookingFixture()
		b := bookingInState(t, domain.BookingStatusVisited)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)

		_, err := f.svc.ConfirmRemainingPayment(ctx, 42, "txn-r", 64900)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestBookingService_ProcessFinalSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Pays Vendor", func(t *testing.T) {
		f := newBookingFixture()
		f.allowSideEffects()
		b := bookingInState(t, domain.BookingStatusAdminApproved)
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)
		f.bookingRepo.On("Update", ctx, b).Return(nil)
		f.ledger.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.LedgerEntryVendorPayout &&
				e.AmountPaise == 69900 && // 64900 base + 5000 incentive
				e.PartyID == int32(7)
		})).Return(nil).Once()

		res, err := f.svc.ProcessFinalSettlement(ctx, 42, domain.SettlementInput{IncentivePaise: 5000})
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, res.Status)
		assert.Equal(t, int64(69900), res.Payment.Settlement.AmountPaise)

		// Second attempt trips the run-once guard.
		_, err = f.svc.ProcessFinalSettlement(ctx, 42, domain.SettlementInput{IncentivePaise: 5000})
		assert.ErrorIs(t, err, domain.ErrAlreadySettled)
		f.ledger.AssertNumberOfCalls(t, "CreateEntry", 1)
	})

	t.Run("Failed Refunds User", func(t *testing.T) {
		f := newBookingFixture()
		f.allowSideEffects()
		b := bookingInState(t, domain.BookingStatusPaymentSuccess)
		require.NoError(t, b.AttachBorewellResult(domain.RoleUser, domain.BorewellOutcomeFailed, nil, fixedNow))
		require.NoError(t, b.ApproveBorewellResult(domain.BorewellOutcomeFailed, fixedNow))
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)
		f.bookingRepo.On("Update", ctx, b).Return(nil)

		f.ledger.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.LedgerEntryVendorPayout && e.AmountPaise == 44900
		})).Return(nil).Once()
		f.ledger.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.LedgerEntryUserRefund && e.AmountPaise == 30000 && e.PartyID == b.UserID
		})).Return(nil).Once()

		res, err := f.svc.ProcessFinalSettlement(ctx, 42,
			domain.SettlementInput{PenaltyPaise: 20000, RefundPaise: 30000})
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, res.Status)
		f.ledger.AssertNumberOfCalls(t, "CreateEntry", 2)
	})

	t.Run("Penalty Beyond Base Rejected", func(t *testing.T) {
		f := newBookingFixture()
		b := bookingInState(t, domain.BookingStatusPaymentSuccess)
		require.NoError(t, b.AttachBorewellResult(domain.RoleUser, domain.BorewellOutcomeFailed, nil, fixedNow))
		require.NoError(t, b.ApproveBorewellResult(domain.BorewellOutcomeFailed, fixedNow))
		f.bookingRepo.On("GetByID", ctx, int32(42)).Return(b, nil)

		_, err := f.svc.ProcessFinalSettlement(ctx, 42, domain.SettlementInput{PenaltyPaise: 70000})
		assert.ErrorIs(t, err, domain.ErrAmountOutOfRange)
		f.bookingRepo.AssertNotCalled(t, "Update")
	})
}

func TestBookingService_ConflictRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("Retries Until Write Lands", func(t *testing.T) {
		f := newBookingFixture()
		f.allowSideEffects()
		// Every attempt re-reads a fresh copy, as the repository would return.
		for i := 0; i < 3; i++ {
			f.bookingRepo.On("GetByID", ctx, int32(42)).
				Return(bookingInState(t, domain.BookingStatusAssigned), nil).Once()
		}
		f.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).
			Return(domain.ErrConcurrencyConflict).Twice()
		f.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).
			Return(nil).Once()

		res, err := f.svc.AcceptBooking(ctx, 7, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusAccepted, res.Status)
		f.bookingRepo.AssertNumberOfCalls(t, "GetByID", 3)
	})

	t.Run("Gives Up After Max Attempts", func(t *testing.T) {
		f := newBookingFixture()
		for i := 0; i < 3; i++ {
			f.bookingRepo.On("GetByID", ctx, int32(42)).
				Return(bookingInState(t, domain.BookingStatusAssigned), nil).Once()
		}
		f.bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).
			Return(domain.ErrConcurrencyConflict)

		_, err := f.svc.AcceptBooking(ctx, 7, 42)
		assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
		f.bookingRepo.AssertNumberOfCalls(t, "Update", 3)
	})
}

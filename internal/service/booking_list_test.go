package service

import (
	"context"
	"testing"

	"aquascout-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newListTestService() (*MockBookingRepo, *MockLedgerRepo, BookingService) {
	bookingRepo := new(MockBookingRepo)
	ledgerRepo := new(MockLedgerRepo)
	svc := NewBookingService(bookingRepo, new(MockUserRepo), new(MockSettingsRepo),
		ledgerRepo, new(MockNotificationRepo), new(MockEmailService))
	return bookingRepo, ledgerRepo, svc
}

func TestListAllBookings(t *testing.T) {
	bookingRepo, _, svc := newListTestService()
	bookingRepo.On("ListByStatus", mock.Anything, "AWAITING_PAYMENT", int32(1), int32(20)).
		Return([]domain.Booking{{ID: 42, Status: domain.BookingStatusAwaitingPayment}}, int32(1), nil)

	bookings, total, err := svc.ListAllBookings(context.Background(), "AWAITING_PAYMENT", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, int32(42), bookings[0].ID)
	bookingRepo.AssertExpectations(t)
}

func TestListLedgerEntries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		bookingRepo, ledgerRepo, svc := newListTestService()
		bookingRepo.On("GetByID", mock.Anything, int32(42)).
			Return(&domain.Booking{ID: 42}, nil)
		ledgerRepo.On("ListByBooking", mock.Anything, int32(42)).
			Return([]domain.LedgerEntry{
				{BookingID: 42, PartyID: 3, AmountPaise: -64900, Type: domain.LedgerEntryAdvancePayment},
				{BookingID: 42, PartyID: 7, AmountPaise: 69900, Type: domain.LedgerEntryVendorPayout},
			}, nil)

		entries, err := svc.ListLedgerEntries(context.Background(), 42)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.LedgerEntryVendorPayout, entries[1].Type)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		bookingRepo, ledgerRepo, svc := newListTestService()
		bookingRepo.On("GetByID", mock.Anything, int32(999)).
			Return(nil, domain.ErrNotFound)

		_, err := svc.ListLedgerEntries(context.Background(), 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		ledgerRepo.AssertNotCalled(t, "ListByBooking", mock.Anything, mock.Anything)
	})
}

package service

import (
	"context"
	"time"

	"aquascout-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByStatusBefore(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, status, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) GetPricing(ctx context.Context) (*domain.PricingSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingSettings), args.Error(1)
}
func (m *MockSettingsRepo) UpdatePricing(ctx context.Context, settings *domain.PricingSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingAssigned(ctx context.Context, vendorEmail, vendorName, reference string) error {
	args := m.Called(ctx, vendorEmail, vendorName, reference)
	return args.Error(0)
}
func (m *MockEmailService) SendVisitUpdate(ctx context.Context, userEmail, userName, reference, update string) error {
	args := m.Called(ctx, userEmail, userName, reference, update)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentDue(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error {
	args := m.Called(ctx, userEmail, userName, reference, amountPaise)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error {
	args := m.Called(ctx, userEmail, userName, reference, amountPaise)
	return args.Error(0)
}
func (m *MockEmailService) SendReportDecision(ctx context.Context, vendorEmail, vendorName, reference, decision, reason string) error {
	args := m.Called(ctx, vendorEmail, vendorName, reference, decision, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendSettlementNotice(ctx context.Context, email, name, reference string, amountPaise int64) error {
	args := m.Called(ctx, email, name, reference, amountPaise)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellation(ctx context.Context, email, name, reference, reason string) error {
	args := m.Called(ctx, email, name, reference, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error {
	args := m.Called(ctx, userEmail, userName, reference, amountPaise)
	return args.Error(0)
}

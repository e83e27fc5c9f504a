package service

import (
	"context"

	"aquascout-backend/internal/domain"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID int32, siteAddress string, distanceKm float64, baseServiceFeePaise int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, actorID int32, role domain.Role, bookingID int32) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListVendorBookings(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListAllBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListLedgerEntries(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error)

	AssignVendor(ctx context.Context, bookingID, vendorID int32) (*domain.Booking, error)
	AcceptBooking(ctx context.Context, vendorID, bookingID int32) (*domain.Booking, error)
	MarkVisited(ctx context.Context, vendorID, bookingID int32) (*domain.Booking, error)
	UploadReport(ctx context.Context, vendorID, bookingID int32, report domain.SurveyReport) (*domain.Booking, error)
	ApproveReport(ctx context.Context, bookingID int32) (*domain.Booking, error)
	RejectReport(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error)

	ConfirmAdvancePayment(ctx context.Context, bookingID int32, txnRef string, amountPaise int64) (*domain.Booking, error)
	ConfirmRemainingPayment(ctx context.Context, bookingID int32, txnRef string, amountPaise int64) (*domain.Booking, error)

	RequestTravelCharges(ctx context.Context, vendorID, bookingID int32, amountPaise int64, reason string) (*domain.Booking, error)
	ApproveTravelCharges(ctx context.Context, bookingID int32) (*domain.Booking, error)
	RejectTravelCharges(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error)

	UploadBorewellResult(ctx context.Context, actorID int32, role domain.Role, bookingID int32, outcome domain.BorewellOutcome, images []string) (*domain.Booking, error)
	ApproveBorewellResult(ctx context.Context, bookingID int32, approved bool) (*domain.Booking, error)
	ProcessFinalSettlement(ctx context.Context, bookingID int32, input domain.SettlementInput) (*domain.Booking, error)

	CancelBooking(ctx context.Context, actorID int32, role domain.Role, bookingID int32, reason string) (*domain.Booking, error)
}

type SettingsService interface {
	GetPricingSettings(ctx context.Context) (*domain.PricingSettings, error)
	UpdatePricingSettings(ctx context.Context, settings *domain.PricingSettings) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingAssigned(ctx context.Context, vendorEmail, vendorName, reference string) error
	SendVisitUpdate(ctx context.Context, userEmail, userName, reference, update string) error
	SendPaymentDue(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error
	SendPaymentReceipt(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error
	SendReportDecision(ctx context.Context, vendorEmail, vendorName, reference, decision, reason string) error
	SendSettlementNotice(ctx context.Context, email, name, reference string, amountPaise int64) error
	SendCancellation(ctx context.Context, email, name, reference, reason string) error
	SendPaymentReminder(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error
}

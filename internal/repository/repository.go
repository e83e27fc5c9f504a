package repository

import (
	"context"
	"time"

	"aquascout-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// Update persists the booking with an optimistic version check: the write
	// only lands if the stored version still matches booking.Version, and the
	// version is incremented as part of the same statement. A stale version
	// yields domain.ErrConcurrencyConflict.
	Update(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListByStatus returns bookings across all parties, optionally filtered by
	// status. Serves the admin listing surface.
	ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListByStatusBefore returns bookings sitting in the given status since
	// before the cutoff. Used by the scheduled reminder jobs.
	ListByStatusBefore(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type SettingsRepository interface {
	GetPricing(ctx context.Context) (*domain.PricingSettings, error)
	UpdatePricing(ctx context.Context, settings *domain.PricingSettings) error
}

type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

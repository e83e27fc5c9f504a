package postgres

import (
	"database/sql"

	"aquascout-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all repositories over one database handle.
type Store struct {
	db *sql.DB

	Bookings      repository.BookingRepository
	Users         repository.UserRepository
	Settings      repository.SettingsRepository
	Ledger        repository.LedgerRepository
	Notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		Bookings:      NewBookingRepository(db),
		Users:         NewUserRepository(db),
		Settings:      NewSettingsRepository(db),
		Ledger:        NewLedgerRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

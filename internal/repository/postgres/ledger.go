package postgres

import (
	"context"
	"database/sql"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (booking_id, party_id, amount_paise, type, txn_ref, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, e.BookingID, e.PartyID, e.AmountPaise, e.Type, e.TxnRef, e.Description, now).Scan(&e.ID)
}

func (r *ledgerRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error) {
	query := `SELECT id, booking_id, party_id, amount_paise, type, COALESCE(txn_ref, ''), COALESCE(description, ''), created_on
	          FROM ledger_entries WHERE booking_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.BookingID, &e.PartyID, &e.AmountPaise, &e.Type, &e.TxnRef, &e.Description, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

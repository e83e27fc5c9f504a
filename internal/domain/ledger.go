package domain

import "time"

type LedgerEntryType string

const (
	LedgerEntryAdvancePayment   LedgerEntryType = "ADVANCE_PAYMENT"
	LedgerEntryRemainingPayment LedgerEntryType = "REMAINING_PAYMENT"
	LedgerEntryVendorPayout     LedgerEntryType = "VENDOR_PAYOUT"
	LedgerEntryUserRefund       LedgerEntryType = "USER_REFUND"
)

// LedgerEntry records one money movement tied to a booking. Entries are
// append-only companions to the booking record; the booking's payment flags
// remain the source of truth for gating.
type LedgerEntry struct {
	ID          int32           `json:"id"`
	BookingID   int32           `json:"booking_id"`
	PartyID     int32           `json:"party_id"`
	AmountPaise int64           `json:"amount_paise"` // positive credit to the party, negative debit
	Type        LedgerEntryType `json:"type"`
	TxnRef      string          `json:"txn_ref,omitempty"`
	Description string          `json:"description"`
	CreatedOn   time.Time       `json:"created_on"`
}

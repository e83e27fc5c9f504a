package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, reference, user_id, vendor_id, site_address, distance_km, status, version,
	base_service_fee_paise, travel_charges_paise, gst_paise, total_amount_paise, advance_amount_paise, remaining_amount_paise,
	advance_paid, advance_paid_at, advance_txn_ref, remaining_paid, remaining_paid_at, remaining_txn_ref,
	settlement_status, settlement_amount_paise, settlement_incentive_paise, settlement_penalty_paise, settlement_refund_paise, settled_at,
	report_water_found, report_images, report_file_url, report_machine_readings, report_notes,
	report_uploaded_at, report_approved_at, report_rejected_at, report_rejection_reason,
	borewell_outcome, borewell_images, borewell_uploaded_by, borewell_uploaded_at, borewell_approved_at,
	travel_amount_paise, travel_status, travel_reason, travel_rejection_reason, travel_requested_at, travel_resolved_at,
	assigned_at, accepted_at, visited_at, first_report_uploaded_at, admin_approved_at, completed_at, cancelled_at, cancel_reason,
	created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (reference, user_id, site_address, distance_km, status, version,
		base_service_fee_paise, travel_charges_paise, gst_paise, total_amount_paise, advance_amount_paise, remaining_amount_paise,
		settlement_status, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		b.Reference, b.UserID, b.SiteAddress, b.DistanceKm, b.Status, b.Version,
		b.Payment.BaseServiceFeePaise, b.Payment.TravelChargesPaise, b.Payment.GSTPaise,
		b.Payment.TotalAmountPaise, b.Payment.AdvanceAmountPaise, b.Payment.RemainingAmountPaise,
		b.Payment.Settlement.Status, now, now,
	).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

// Update writes every mutable column guarded by the optimistic version check.
// Zero rows affected means the row moved underneath us.
func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET
		vendor_id=$1, status=$2, version=version+1,
		advance_paid=$3, advance_paid_at=$4, advance_txn_ref=$5,
		remaining_paid=$6, remaining_paid_at=$7, remaining_txn_ref=$8,
		settlement_status=$9, settlement_amount_paise=$10, settlement_incentive_paise=$11,
		settlement_penalty_paise=$12, settlement_refund_paise=$13, settled_at=$14,
		report_water_found=$15, report_images=$16, report_file_url=$17, report_machine_readings=$18, report_notes=$19,
		report_uploaded_at=$20, report_approved_at=$21, report_rejected_at=$22, report_rejection_reason=$23,
		borewell_outcome=$24, borewell_images=$25, borewell_uploaded_by=$26, borewell_uploaded_at=$27, borewell_approved_at=$28,
		travel_amount_paise=$29, travel_status=$30, travel_reason=$31, travel_rejection_reason=$32, travel_requested_at=$33, travel_resolved_at=$34,
		assigned_at=$35, accepted_at=$36, visited_at=$37, first_report_uploaded_at=$38,
		admin_approved_at=$39, completed_at=$40, cancelled_at=$41, cancel_reason=$42,
		updated_on=$43
		WHERE id=$44 AND version=$45`

	var (
		reportWaterFound                                        *bool
		reportImages, borewellImages                            []string
		reportFileURL, reportMachineReadings, reportNotes       *string
		reportUploadedAt, reportApprovedAt, reportRejectedAt    *time.Time
		reportRejectionReason                                   *string
		borewellOutcome, borewellUploadedBy                     *string
		borewellUploadedAt, borewellApprovedAt                  *time.Time
		travelAmount                                            *int64
		travelStatus, travelReason, travelRejectionReason       *string
		travelRequestedAt, travelResolvedAt                     *time.Time
	)
	if rep := b.Report; rep != nil {
		reportWaterFound = &rep.WaterFound
		reportImages = rep.Images
		reportFileURL = &rep.ReportFileURL
		reportMachineReadings = &rep.MachineReadings
		reportNotes = &rep.Notes
		t := rep.UploadedAt
		reportUploadedAt = &t
		reportApprovedAt = rep.ApprovedAt
		reportRejectedAt = rep.RejectedAt
		reportRejectionReason = &rep.RejectionReason
	}
	if bw := b.BorewellResult; bw != nil {
		outcome := string(bw.Outcome)
		uploadedBy := string(bw.UploadedBy)
		borewellOutcome = &outcome
		borewellImages = bw.Images
		borewellUploadedBy = &uploadedBy
		t := bw.UploadedAt
		borewellUploadedAt = &t
		borewellApprovedAt = bw.ApprovedAt
	}
	if tc := b.TravelCharges; tc != nil {
		travelAmount = &tc.AmountPaise
		status := string(tc.Status)
		travelStatus = &status
		travelReason = &tc.Reason
		travelRejectionReason = &tc.RejectionReason
		t := tc.RequestedAt
		travelRequestedAt = &t
		travelResolvedAt = tc.ResolvedAt
	}

	now := time.Now()
	res, err := r.db.ExecContext(ctx, query,
		b.VendorID, b.Status,
		b.Payment.AdvancePaid, b.Payment.AdvancePaidAt, b.Payment.AdvanceTxnRef,
		b.Payment.RemainingPaid, b.Payment.RemainingPaidAt, b.Payment.RemainingTxnRef,
		b.Payment.Settlement.Status, b.Payment.Settlement.AmountPaise, b.Payment.Settlement.IncentivePaise,
		b.Payment.Settlement.PenaltyPaise, b.Payment.Settlement.RefundPaise, b.Payment.Settlement.SettledAt,
		reportWaterFound, pq.Array(reportImages), reportFileURL, reportMachineReadings, reportNotes,
		reportUploadedAt, reportApprovedAt, reportRejectedAt, reportRejectionReason,
		borewellOutcome, pq.Array(borewellImages), borewellUploadedBy, borewellUploadedAt, borewellApprovedAt,
		travelAmount, travelStatus, travelReason, travelRejectionReason, travelRequestedAt, travelResolvedAt,
		b.AssignedAt, b.AcceptedAt, b.VisitedAt, b.ReportUploadedAt,
		b.AdminApprovedAt, b.CompletedAt, b.CancelledAt, b.CancelReason,
		now, b.ID, b.Version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConcurrencyConflict
	}
	b.Version++
	b.UpdatedOn = now
	return nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "user_id", userID, status, page, pageSize)
}

func (r *bookingRepository) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "vendor_id", vendorID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, partyColumn string, partyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := fmt.Sprintf("WHERE %s = $1", partyColumn)
	args := []interface{}{partyID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM bookings " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM bookings %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d",
		bookingColumns, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := ""
	var args []interface{}
	argIdx := 1
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
		argIdx = 2
	}

	var count int32
	countQuery := "SELECT count(*) FROM bookings " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM bookings %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d",
		bookingColumns, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByStatusBefore(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND updated_on < $2 ORDER BY updated_on ASC`
	rows, err := r.db.QueryContext(ctx, query, status, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                 domain.Booking
		vendorID          sql.NullInt32
		advancePaidAt     sql.NullTime
		advanceTxnRef     sql.NullString
		remainingPaidAt   sql.NullTime
		remainingTxnRef   sql.NullString
		settlementStatus  string
		incentive         sql.NullInt64
		penalty           sql.NullInt64
		refund            sql.NullInt64
		settledAt         sql.NullTime
		repWaterFound     sql.NullBool
		repImages         []string
		repFileURL        sql.NullString
		repReadings       sql.NullString
		repNotes          sql.NullString
		repUploadedAt     sql.NullTime
		repApprovedAt     sql.NullTime
		repRejectedAt     sql.NullTime
		repRejectReason   sql.NullString
		bwOutcome         sql.NullString
		bwImages          []string
		bwUploadedBy      sql.NullString
		bwUploadedAt      sql.NullTime
		bwApprovedAt      sql.NullTime
		tcAmount          sql.NullInt64
		tcStatus          sql.NullString
		tcReason          sql.NullString
		tcRejectReason    sql.NullString
		tcRequestedAt     sql.NullTime
		tcResolvedAt      sql.NullTime
		assignedAt        sql.NullTime
		acceptedAt        sql.NullTime
		visitedAt         sql.NullTime
		firstReportAt     sql.NullTime
		adminApprovedAt   sql.NullTime
		completedAt       sql.NullTime
		cancelledAt       sql.NullTime
		cancelReason      sql.NullString
	)

	err := row.Scan(
		&b.ID, &b.Reference, &b.UserID, &vendorID, &b.SiteAddress, &b.DistanceKm, &b.Status, &b.Version,
		&b.Payment.BaseServiceFeePaise, &b.Payment.TravelChargesPaise, &b.Payment.GSTPaise,
		&b.Payment.TotalAmountPaise, &b.Payment.AdvanceAmountPaise, &b.Payment.RemainingAmountPaise,
		&b.Payment.AdvancePaid, &advancePaidAt, &advanceTxnRef,
		&b.Payment.RemainingPaid, &remainingPaidAt, &remainingTxnRef,
		&settlementStatus, &b.Payment.Settlement.AmountPaise, &incentive, &penalty, &refund, &settledAt,
		&repWaterFound, pq.Array(&repImages), &repFileURL, &repReadings, &repNotes,
		&repUploadedAt, &repApprovedAt, &repRejectedAt, &repRejectReason,
		&bwOutcome, pq.Array(&bwImages), &bwUploadedBy, &bwUploadedAt, &bwApprovedAt,
		&tcAmount, &tcStatus, &tcReason, &tcRejectReason, &tcRequestedAt, &tcResolvedAt,
		&assignedAt, &acceptedAt, &visitedAt, &firstReportAt, &adminApprovedAt, &completedAt, &cancelledAt, &cancelReason,
		&b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	if vendorID.Valid {
		v := vendorID.Int32
		b.VendorID = &v
	}
	b.Payment.AdvancePaidAt = nullTimePtr(advancePaidAt)
	b.Payment.AdvanceTxnRef = advanceTxnRef.String
	b.Payment.RemainingPaidAt = nullTimePtr(remainingPaidAt)
	b.Payment.RemainingTxnRef = remainingTxnRef.String
	b.Payment.Settlement.Status = domain.SettlementStatus(settlementStatus)
	b.Payment.Settlement.IncentivePaise = nullInt64Ptr(incentive)
	b.Payment.Settlement.PenaltyPaise = nullInt64Ptr(penalty)
	b.Payment.Settlement.RefundPaise = nullInt64Ptr(refund)
	b.Payment.Settlement.SettledAt = nullTimePtr(settledAt)

	if repUploadedAt.Valid {
		b.Report = &domain.SurveyReport{
			WaterFound:      repWaterFound.Bool,
			Images:          repImages,
			ReportFileURL:   repFileURL.String,
			MachineReadings: repReadings.String,
			Notes:           repNotes.String,
			UploadedAt:      repUploadedAt.Time,
			ApprovedAt:      nullTimePtr(repApprovedAt),
			RejectedAt:      nullTimePtr(repRejectedAt),
			RejectionReason: repRejectReason.String,
		}
	}
	if bwUploadedAt.Valid {
		b.BorewellResult = &domain.BorewellResult{
			Outcome:    domain.BorewellOutcome(bwOutcome.String),
			Images:     bwImages,
			UploadedBy: domain.Role(bwUploadedBy.String),
			UploadedAt: bwUploadedAt.Time,
			ApprovedAt: nullTimePtr(bwApprovedAt),
		}
	}
	if tcRequestedAt.Valid {
		b.TravelCharges = &domain.TravelChargeRequest{
			AmountPaise:     tcAmount.Int64,
			Status:          domain.ApprovalStatus(tcStatus.String),
			Reason:          tcReason.String,
			RejectionReason: tcRejectReason.String,
			RequestedAt:     tcRequestedAt.Time,
			ResolvedAt:      nullTimePtr(tcResolvedAt),
		}
	}

	b.AssignedAt = nullTimePtr(assignedAt)
	b.AcceptedAt = nullTimePtr(acceptedAt)
	b.VisitedAt = nullTimePtr(visitedAt)
	b.ReportUploadedAt = nullTimePtr(firstReportAt)
	b.BorewellUploadedAt = nullTimePtr(bwUploadedAt)
	b.AdminApprovedAt = nullTimePtr(adminApprovedAt)
	b.CompletedAt = nullTimePtr(completedAt)
	b.CancelledAt = nullTimePtr(cancelledAt)
	b.CancelReason = cancelReason.String
	return &b, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

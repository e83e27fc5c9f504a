package jobs

import (
	"context"
	"fmt"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/logger"
)

// SendPaymentReminders mails users whose remaining installment has been due
// for longer than the configured age. The booking itself is not touched.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.PaymentReminderAgeDays)

		bookings, err := jr.store.Bookings.ListByStatusBefore(ctx, domain.BookingStatusAwaitingPayment, cutoff)
		if err != nil {
			logger.Error("Failed to list bookings awaiting payment", "error", err)
			return
		}

		count := 0
		for i := range bookings {
			b := &bookings[i]
			if b.Payment.RemainingPaid {
				continue
			}
			user, err := jr.store.Users.GetByID(ctx, b.UserID)
			if err != nil {
				logger.Error("Failed to load user for payment reminder", "booking_id", b.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendPaymentReminder(ctx, user.Email, user.Name, b.Reference, b.Payment.RemainingAmountPaise); err != nil {
				logger.Error("Failed to send payment reminder", "booking_id", b.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent payment reminders", "count", count)
	})
}

// AlertStaleAssignments flags bookings that have sat in ASSIGNED without the
// vendor accepting, so admins can reassign.
func (jr *JobRunner) AlertStaleAssignments() {
	jr.runWithRecovery("AlertStaleAssignments", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.StaleAssignmentAgeDays)

		bookings, err := jr.store.Bookings.ListByStatusBefore(ctx, domain.BookingStatusAssigned, cutoff)
		if err != nil {
			logger.Error("Failed to list stale assignments", "error", err)
			return
		}

		count := 0
		for i := range bookings {
			b := &bookings[i]
			if b.VendorID == nil {
				continue
			}
			note := &domain.Notification{
				UserID:  *b.VendorID,
				Title:   "Assignment Pending",
				Message: fmt.Sprintf("Booking %s is still waiting for your acceptance", b.Reference),
				Attributes: map[string]string{
					"booking_id": fmt.Sprintf("%d", b.ID),
					"status":     string(b.Status),
				},
			}
			if err := jr.store.Notifications.Create(ctx, note); err != nil {
				logger.Error("Failed to create stale assignment notification", "booking_id", b.ID, "error", err)
				continue
			}
			logger.Debug("Flagged stale assignment",
				"booking_id", b.ID,
				"vendor_id", *b.VendorID,
				"assigned_at", b.AssignedAt)
			count++
		}
		logger.Info("Flagged stale assignments", "count", count)
	})
}

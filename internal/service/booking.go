package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/logger"
	"aquascout-backend/internal/repository"
	"aquascout-backend/internal/utils"

	"github.com/google/uuid"
)

// maxConflictRetries bounds the transparent re-read-and-retry loop on
// optimistic version conflicts. Every other error surfaces immediately.
const maxConflictRetries = 3

type bookingService struct {
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	ledgerRepo   repository.LedgerRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	ledgerRepo repository.LedgerRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		ledgerRepo:   ledgerRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

// mutate runs one read-validate-write cycle against the persisted booking,
// retrying the whole cycle on a version conflict. The action closure mutates
// the aggregate in memory; nothing is persisted unless it returns nil.
func (s *bookingService) mutate(ctx context.Context, bookingID int32, action func(*domain.Booking) error) (*domain.Booking, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		b, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if err := action(b); err != nil {
			return nil, err
		}
		err = s.bookingRepo.Update(ctx, b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}
		logger.WarnContext(ctx, "Booking version conflict, retrying", "booking_id", bookingID, "attempt", attempt+1)
	}
	return nil, domain.ErrConcurrencyConflict
}

func (s *bookingService) CreateBooking(ctx context.Context, userID int32, siteAddress string, distanceKm float64, baseServiceFeePaise int64) (*domain.Booking, error) {
	if siteAddress == "" {
		return nil, fmt.Errorf("%w: site address is required", domain.ErrValidation)
	}
	settings, err := s.settingsRepo.GetPricing(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing settings: %w", err)
	}
	quote, err := utils.CalculateBookingQuote(baseServiceFeePaise, distanceKm, *settings)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Reference:   uuid.NewString(),
		UserID:      userID,
		SiteAddress: siteAddress,
		DistanceKm:  distanceKm,
		Status:      domain.BookingStatusPending,
		Payment: domain.Payment{
			BaseServiceFeePaise:  quote.BaseServiceFeePaise,
			TravelChargesPaise:   quote.TravelChargesPaise,
			GSTPaise:             quote.GSTPaise,
			TotalAmountPaise:     quote.TotalAmountPaise,
			AdvanceAmountPaise:   quote.AdvanceAmountPaise,
			RemainingAmountPaise: quote.RemainingAmountPaise,
			Settlement:           domain.VendorSettlement{Status: domain.SettlementStatusPending},
		},
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Booking created", "booking_id", b.ID, "reference", b.Reference, "total_paise", b.Payment.TotalAmountPaise)
	return b, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID int32, role domain.Role, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleUser:
		if b.UserID != actorID {
			return nil, domain.ErrUnauthorized
		}
	case domain.RoleVendor:
		if b.VendorID == nil || *b.VendorID != actorID {
			return nil, domain.ErrUnauthorized
		}
	case domain.RoleAdmin:
	default:
		return nil, domain.ErrUnauthorized
	}
	return b, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *bookingService) ListVendorBookings(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByVendor(ctx, vendorID, status, page, pageSize)
}

func (s *bookingService) ListAllBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByStatus(ctx, status, page, pageSize)
}

// ListLedgerEntries returns the money movements recorded against one booking,
// oldest first.
func (s *bookingService) ListLedgerEntries(ctx context.Context, bookingID int32) ([]domain.LedgerEntry, error) {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByBooking(ctx, bookingID)
}

func (s *bookingService) AssignVendor(ctx context.Context, bookingID, vendorID int32) (*domain.Booking, error) {
	vendor, err := s.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != domain.RoleVendor {
		return nil, fmt.Errorf("%w: user %d is not a vendor", domain.ErrValidation, vendorID)
	}
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.AssignVendor(vendorID, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, vendorID, "New Survey Assignment",
		fmt.Sprintf("Booking %s has been assigned to you", b.Reference), b)
	_ = s.emailSvc.SendBookingAssigned(ctx, vendor.Email, vendor.Name, b.Reference)
	return b, nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, vendorID, bookingID int32) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.Accept(vendorID, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.UserID, "Booking Accepted",
		fmt.Sprintf("The vendor accepted your survey booking %s", b.Reference), b)
	s.emailUser(ctx, b, func(u *domain.User) error {
		return s.emailSvc.SendVisitUpdate(ctx, u.Email, u.Name, b.Reference, "accepted")
	})
	return b, nil
}

func (s *bookingService) MarkVisited(ctx context.Context, vendorID, bookingID int32) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.MarkVisited(vendorID, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.UserID, "Site Visited",
		fmt.Sprintf("The vendor completed the site visit for booking %s", b.Reference), b)
	s.emailUser(ctx, b, func(u *domain.User) error {
		return s.emailSvc.SendVisitUpdate(ctx, u.Email, u.Name, b.Reference, "visited")
	})
	return b, nil
}

func (s *bookingService) UploadReport(ctx context.Context, vendorID, bookingID int32, report domain.SurveyReport) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.AttachReport(vendorID, report, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.UserID, "Survey Report Ready",
		fmt.Sprintf("Your survey report for booking %s is ready. Pay the remaining amount to view it.", b.Reference), b)
	s.emailUser(ctx, b, func(u *domain.User) error {
		return s.emailSvc.SendPaymentDue(ctx, u.Email, u.Name, b.Reference, b.Payment.RemainingAmountPaise)
	})
	return b, nil
}

func (s *bookingService) ApproveReport(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.ApproveReport(time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notifyVendor(ctx, b, "Report Approved",
		fmt.Sprintf("Your survey report for booking %s was approved", b.Reference))
	s.emailVendor(ctx, b, func(v *domain.User) error {
		return s.emailSvc.SendReportDecision(ctx, v.Email, v.Name, b.Reference, "approved", "")
	})
	return b, nil
}

func (s *bookingService) RejectReport(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.RejectReport(reason, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notifyVendor(ctx, b, "Report Rejected",
		fmt.Sprintf("Your survey report for booking %s was rejected: %s", b.Reference, reason))
	s.emailVendor(ctx, b, func(v *domain.User) error {
		return s.emailSvc.SendReportDecision(ctx, v.Email, v.Name, b.Reference, "rejected", reason)
	})
	return b, nil
}

func (s *bookingService) ConfirmAdvancePayment(ctx context.Context, bookingID int32, txnRef string, amountPaise int64) (*domain.Booking, error) {
	var firstConfirmation bool
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		firstConfirmation = !b.Payment.AdvancePaid
		if firstConfirmation && amountPaise != b.Payment.AdvanceAmountPaise {
			return fmt.Errorf("%w: captured amount %d does not match advance amount %d",
				domain.ErrValidation, amountPaise, b.Payment.AdvanceAmountPaise)
		}
		return b.ConfirmAdvancePayment(txnRef, time.Now())
	})
	if err != nil {
		return nil, err
	}
	if firstConfirmation {
		s.recordLedger(ctx, b, b.UserID, -amountPaise, domain.LedgerEntryAdvancePayment, txnRef, "Advance installment captured")
		s.emailUser(ctx, b, func(u *domain.User) error {
			return s.emailSvc.SendPaymentReceipt(ctx, u.Email, u.Name, b.Reference, amountPaise)
		})
	}
	return b, nil
}

func (s *bookingService) ConfirmRemainingPayment(ctx context.Context, bookingID int32, txnRef string, amountPaise int64) (*domain.Booking, error) {
	var firstConfirmation bool
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		firstConfirmation = !b.Payment.RemainingPaid
		if firstConfirmation && amountPaise != b.Payment.RemainingAmountPaise {
			return fmt.Errorf("%w: captured amount %d does not match remaining amount %d",
				domain.ErrValidation, amountPaise, b.Payment.RemainingAmountPaise)
		}
		return b.ConfirmRemainingPayment(txnRef, time.Now())
	})
	if err != nil {
		return nil, err
	}
	if firstConfirmation {
		s.recordLedger(ctx, b, b.UserID, -amountPaise, domain.LedgerEntryRemainingPayment, txnRef, "Remaining installment captured")
		s.notify(ctx, b.UserID, "Payment Received",
			fmt.Sprintf("Payment received for booking %s. Your survey report is now available.", b.Reference), b)
		s.notifyVendor(ctx, b, "Payment Confirmed",
			fmt.Sprintf("The user paid the remaining amount for booking %s", b.Reference))
		s.emailUser(ctx, b, func(u *domain.User) error {
			return s.emailSvc.SendPaymentReceipt(ctx, u.Email, u.Name, b.Reference, amountPaise)
		})
	}
	return b, nil
}

func (s *bookingService) RequestTravelCharges(ctx context.Context, vendorID, bookingID int32, amountPaise int64, reason string) (*domain.Booking, error) {
	return s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.RequestTravelCharges(vendorID, amountPaise, reason, time.Now())
	})
}

func (s *bookingService) ApproveTravelCharges(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.ApproveTravelCharges(time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notifyVendor(ctx, b, "Travel Charges Approved",
		fmt.Sprintf("Your travel charge request for booking %s was approved", b.Reference))
	return b, nil
}

func (s *bookingService) RejectTravelCharges(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return b.RejectTravelCharges(reason, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notifyVendor(ctx, b, "Travel Charges Rejected",
		fmt.Sprintf("Your travel charge request for booking %s was rejected: %s", b.Reference, reason))
	return b, nil
}

func (s *bookingService) UploadBorewellResult(ctx context.Context, actorID int32, role domain.Role, bookingID int32, outcome domain.BorewellOutcome, images []string) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		switch role {
		case domain.RoleUser:
			if b.UserID != actorID {
				return domain.ErrUnauthorized
			}
		case domain.RoleVendor:
			if b.VendorID == nil || *b.VendorID != actorID {
				return domain.ErrUnauthorized
			}
		default:
			return domain.ErrUnauthorized
		}
		return b.AttachBorewellResult(role, outcome, images, time.Now())
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Borewell result uploaded", "booking_id", b.ID, "outcome", outcome, "by", role)
	return b, nil
}

func (s *bookingService) ApproveBorewellResult(ctx context.Context, bookingID int32, approved bool) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		if b.BorewellResult == nil {
			return fmt.Errorf("%w: no borewell result uploaded", domain.ErrInvalidTransition)
		}
		// approved confirms the submitted outcome; a false verdict overrides
		// it to the opposite value.
		confirmed := b.BorewellResult.Outcome
		if !approved {
			if confirmed == domain.BorewellOutcomeSuccess {
				confirmed = domain.BorewellOutcomeFailed
			} else {
				confirmed = domain.BorewellOutcomeSuccess
			}
		}
		return b.ApproveBorewellResult(confirmed, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.UserID, "Borewell Result Confirmed",
		fmt.Sprintf("The borewell result for booking %s was confirmed as %s", b.Reference, b.BorewellResult.Outcome), b)
	s.notifyVendor(ctx, b, "Borewell Result Confirmed",
		fmt.Sprintf("The borewell result for booking %s was confirmed as %s", b.Reference, b.BorewellResult.Outcome))
	return b, nil
}

func (s *bookingService) ProcessFinalSettlement(ctx context.Context, bookingID int32, input domain.SettlementInput) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		if b.Payment.Settlement.Status != domain.SettlementStatusPending {
			return domain.ErrAlreadySettled
		}
		if b.BorewellResult == nil || b.BorewellResult.ApprovedAt == nil {
			return fmt.Errorf("%w: borewell result not approved", domain.ErrInvalidTransition)
		}
		st, err := domain.ComputeSettlement(
			b.Payment.TotalAmountPaise, b.Payment.RemainingAmountPaise,
			b.BorewellResult.Outcome, input, time.Now())
		if err != nil {
			return err
		}
		return b.ApplySettlement(st, time.Now())
	})
	if err != nil {
		return nil, err
	}

	// The settlement landed atomically with the COMPLETED transition; ledger
	// rows and notifications are append-only companions written afterwards.
	if b.VendorID != nil {
		s.recordLedger(ctx, b, *b.VendorID, b.Payment.Settlement.AmountPaise, domain.LedgerEntryVendorPayout, "", "Final vendor settlement")
		s.emailVendor(ctx, b, func(v *domain.User) error {
			return s.emailSvc.SendSettlementNotice(ctx, v.Email, v.Name, b.Reference, b.Payment.Settlement.AmountPaise)
		})
	}
	if r := b.Payment.Settlement.RefundPaise; r != nil && *r > 0 {
		s.recordLedger(ctx, b, b.UserID, *r, domain.LedgerEntryUserRefund, "", "Refund for failed borewell")
		s.emailUser(ctx, b, func(u *domain.User) error {
			return s.emailSvc.SendSettlementNotice(ctx, u.Email, u.Name, b.Reference, *r)
		})
	}
	logger.InfoContext(ctx, "Settlement processed", "booking_id", b.ID, "payout_paise", b.Payment.Settlement.AmountPaise)
	return b, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actorID int32, role domain.Role, bookingID int32, reason string) (*domain.Booking, error) {
	b, err := s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		switch role {
		case domain.RoleUser:
			if b.UserID != actorID {
				return domain.ErrUnauthorized
			}
		case domain.RoleAdmin:
		default:
			return domain.ErrUnauthorized
		}
		return b.Cancel(reason, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.UserID, "Booking Cancelled",
		fmt.Sprintf("Booking %s was cancelled", b.Reference), b)
	if b.VendorID != nil {
		s.notifyVendor(ctx, b, "Booking Cancelled",
			fmt.Sprintf("Booking %s was cancelled", b.Reference))
		s.emailVendor(ctx, b, func(v *domain.User) error {
			return s.emailSvc.SendCancellation(ctx, v.Email, v.Name, b.Reference, reason)
		})
	}
	return b, nil
}

// notify writes an in-app notification row; failures are logged, not surfaced.
func (s *bookingService) notify(ctx context.Context, userID int32, title, message string, b *domain.Booking) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"booking_id": fmt.Sprintf("%d", b.ID),
			"status":     string(b.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "Failed to create notification", "user_id", userID, "error", err)
	}
}

func (s *bookingService) notifyVendor(ctx context.Context, b *domain.Booking, title, message string) {
	if b.VendorID == nil {
		return
	}
	s.notify(ctx, *b.VendorID, title, message, b)
}

func (s *bookingService) emailUser(ctx context.Context, b *domain.Booking, send func(*domain.User) error) {
	u, err := s.userRepo.GetByID(ctx, b.UserID)
	if err != nil {
		return
	}
	_ = send(u)
}

func (s *bookingService) emailVendor(ctx context.Context, b *domain.Booking, send func(*domain.User) error) {
	if b.VendorID == nil {
		return
	}
	v, err := s.userRepo.GetByID(ctx, *b.VendorID)
	if err != nil {
		return
	}
	_ = send(v)
}

func (s *bookingService) recordLedger(ctx context.Context, b *domain.Booking, partyID int32, amountPaise int64, entryType domain.LedgerEntryType, txnRef, description string) {
	entry := &domain.LedgerEntry{
		BookingID:   b.ID,
		PartyID:     partyID,
		AmountPaise: amountPaise,
		Type:        entryType,
		TxnRef:      txnRef,
		Description: description,
	}
	if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		logger.ErrorContext(ctx, "Failed to record ledger entry", "booking_id", b.ID, "type", entryType, "error", err)
	}
}

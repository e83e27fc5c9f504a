package domain

import (
	"fmt"
	"time"
)

// SettlementInput carries the admin-entered amounts for the final settlement.
// Incentive applies to a SUCCESS outcome; penalty and refund to FAILED.
type SettlementInput struct {
	IncentivePaise int64
	PenaltyPaise   int64
	RefundPaise    int64
}

// BaseVendorShare is the vendor's base settlement share: half of the total
// booking amount, rounded the same way as the advance installment so the two
// halves always sum exactly to the total.
func BaseVendorShare(totalAmountPaise int64) int64 {
	return (totalAmountPaise + 1) / 2
}

// ComputeSettlement derives the vendor payout and user refund for an
// admin-approved borewell outcome.
//
// SUCCESS pays base share plus incentive; no upper bound is enforced on the
// incentive at this layer. FAILED pays base share minus penalty, where the
// penalty may not exceed the base share, and refunds the user an amount
// clamped to [0, remainingAmount]. Exactly one of the two pairs is populated
// on the returned settlement.
func ComputeSettlement(totalAmountPaise, remainingAmountPaise int64, outcome BorewellOutcome, in SettlementInput, now time.Time) (VendorSettlement, error) {
	base := BaseVendorShare(totalAmountPaise)

	if in.IncentivePaise < 0 || in.PenaltyPaise < 0 || in.RefundPaise < 0 {
		return VendorSettlement{}, fmt.Errorf("%w: settlement amounts must be non-negative", ErrValidation)
	}

	t := now
	switch outcome {
	case BorewellOutcomeSuccess:
		if in.PenaltyPaise != 0 || in.RefundPaise != 0 {
			return VendorSettlement{}, fmt.Errorf("%w: penalty and refund do not apply to a successful borewell", ErrValidation)
		}
		incentive := in.IncentivePaise
		return VendorSettlement{
			Status:         SettlementStatusCompleted,
			AmountPaise:    base + incentive,
			IncentivePaise: &incentive,
			SettledAt:      &t,
		}, nil

	case BorewellOutcomeFailed:
		if in.IncentivePaise != 0 {
			return VendorSettlement{}, fmt.Errorf("%w: incentive does not apply to a failed borewell", ErrValidation)
		}
		if in.PenaltyPaise > base {
			return VendorSettlement{}, fmt.Errorf("%w: penalty %d exceeds base vendor share %d", ErrAmountOutOfRange, in.PenaltyPaise, base)
		}
		penalty := in.PenaltyPaise
		refund := in.RefundPaise
		if refund > remainingAmountPaise {
			refund = remainingAmountPaise
		}
		return VendorSettlement{
			Status:       SettlementStatusCompleted,
			AmountPaise:  base - penalty,
			PenaltyPaise: &penalty,
			RefundPaise:  &refund,
			SettledAt:    &t,
		}, nil

	default:
		return VendorSettlement{}, fmt.Errorf("%w: unknown borewell outcome %q", ErrValidation, outcome)
	}
}

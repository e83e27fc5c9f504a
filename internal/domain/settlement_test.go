package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseVendorShare(t *testing.T) {
	assert.Equal(t, int64(64900), BaseVendorShare(129800))
	// Odd totals round the share up so share + complement == total.
	assert.Equal(t, int64(50001), BaseVendorShare(100001))
	assert.Equal(t, int64(0), BaseVendorShare(0))
}

func TestComputeSettlement(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	const total, remaining = int64(129800), int64(64900)

	t.Run("Success With Incentive", func(t *testing.T) {
		st, err := ComputeSettlement(total, remaining, BorewellOutcomeSuccess, SettlementInput{IncentivePaise: 10000}, now)
		require.NoError(t, err)
		assert.Equal(t, SettlementStatusCompleted, st.Status)
		assert.Equal(t, int64(74900), st.AmountPaise) // 64900 base + 10000
		require.NotNil(t, st.IncentivePaise)
		assert.Equal(t, int64(10000), *st.IncentivePaise)
		assert.Nil(t, st.PenaltyPaise)
		assert.Nil(t, st.RefundPaise)
	})

	t.Run("Success Rejects Failure Amounts", func(t *testing.T) {
		_, err := ComputeSettlement(total, remaining, BorewellOutcomeSuccess, SettlementInput{PenaltyPaise: 100}, now)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = ComputeSettlement(total, remaining, BorewellOutcomeSuccess, SettlementInput{RefundPaise: 100}, now)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Failed With Penalty And Refund", func(t *testing.T) {
		st, err := ComputeSettlement(total, remaining, BorewellOutcomeFailed,
			SettlementInput{PenaltyPaise: 20000, RefundPaise: 30000}, now)
		require.NoError(t, err)
		assert.Equal(t, int64(44900), st.AmountPaise) // 64900 - 20000
		require.NotNil(t, st.PenaltyPaise)
		assert.Equal(t, int64(20000), *st.PenaltyPaise)
		require.NotNil(t, st.RefundPaise)
		assert.Equal(t, int64(30000), *st.RefundPaise)
		assert.Nil(t, st.IncentivePaise)
	})

	t.Run("Failed Rejects Incentive", func(t *testing.T) {
		_, err := ComputeSettlement(total, remaining, BorewellOutcomeFailed, SettlementInput{IncentivePaise: 1}, now)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Penalty Capped At Base Share", func(t *testing.T) {
		st, err := ComputeSettlement(total, remaining, BorewellOutcomeFailed, SettlementInput{PenaltyPaise: 64900}, now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), st.AmountPaise)

		_, err = ComputeSettlement(total, remaining, BorewellOutcomeFailed, SettlementInput{PenaltyPaise: 64901}, now)
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})

	t.Run("Refund Clamped To Remaining", func(t *testing.T) {
		st, err := ComputeSettlement(total, remaining, BorewellOutcomeFailed, SettlementInput{RefundPaise: 99999999}, now)
		require.NoError(t, err)
		assert.Equal(t, remaining, *st.RefundPaise)
	})

	t.Run("Negative Amounts Rejected", func(t *testing.T) {
		_, err := ComputeSettlement(total, remaining, BorewellOutcomeSuccess, SettlementInput{IncentivePaise: -1}, now)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = ComputeSettlement(total, remaining, BorewellOutcomeFailed, SettlementInput{RefundPaise: -1}, now)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Unknown Outcome Rejected", func(t *testing.T) {
		_, err := ComputeSettlement(total, remaining, BorewellOutcome("MAYBE"), SettlementInput{}, now)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

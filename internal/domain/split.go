package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DefaultSplitPercentage is the share of the gross value owed to a subaccount.
	DefaultSplitPercentage = 20

	// MaxChargeValue bounds gross values so cent arithmetic stays within int64.
	MaxChargeValue = "1000000000"

	centsPerUnit       = 100
	basisPointsPerUnit = 100 // percentage hundredths
	basisPointsWhole   = 100 * basisPointsPerUnit
)

// SplitRule is the fixed amount routed to a wallet out of one payment.
// It is never stored; it travels inside the provider payment request.
type SplitRule struct {
	WalletID   string
	Percentage decimal.Decimal
	FixedValue decimal.Decimal
}

// ComputeNetSplit returns the fixed amount the wallet receives out of gross.
//
// The amount is round(gross * percentage / 100, 2) with half-up rounding, computed
// on integer cents and percentage hundredths. A fixed value (not a percentage split)
// keeps the subaccount's take independent of provider fees, which fall on the
// primary account.
func ComputeNetSplit(walletID string, gross, percentage decimal.Decimal) (SplitRule, error) {
	if walletID == "" {
		return SplitRule{}, ErrWalletNotAssigned
	}

	grossCents, err := toMinorUnits(gross)
	if err != nil {
		return SplitRule{}, err
	}

	bp, err := toBasisPoints(percentage)
	if err != nil {
		return SplitRule{}, err
	}

	// half-up on non-negative operands
	splitCents := (grossCents*bp + basisPointsWhole/2) / basisPointsWhole
	if splitCents <= 0 {
		return SplitRule{}, fmt.Errorf("%w: %s%% of %s rounds to %s",
			ErrSplitValueInvalid, percentage, gross, decimal.New(splitCents, -2).StringFixed(2))
	}

	return SplitRule{
		WalletID:   walletID,
		Percentage: percentage,
		FixedValue: decimal.New(splitCents, -2),
	}, nil
}

func toMinorUnits(gross decimal.Decimal) (int64, error) {
	if !gross.IsPositive() {
		return 0, ErrInvalidAmount
	}

	maxValue, _ := decimal.NewFromString(MaxChargeValue)
	if gross.GreaterThan(maxValue) {
		return 0, fmt.Errorf("%w: maximum value is %s", ErrInvalidAmount, MaxChargeValue)
	}

	cents := gross.Mul(decimal.NewFromInt(centsPerUnit))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: %s has sub-cent precision", ErrInvalidAmount, gross)
	}

	return cents.IntPart(), nil
}

func toBasisPoints(percentage decimal.Decimal) (int64, error) {
	if !percentage.IsPositive() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidPercentage, percentage)
	}

	bp := percentage.Mul(decimal.NewFromInt(basisPointsPerUnit))
	if !bp.IsInteger() {
		return 0, fmt.Errorf("%w: at most two decimal places, got %s", ErrInvalidPercentage, percentage)
	}

	return bp.IntPart(), nil
}

package services

import (
	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/shopspring/decimal"
)

// fundingSide is one end of a funding calculation.
type fundingSide struct {
	Name      string
	Balance   decimal.Decimal
	Allocated decimal.Decimal
}

// calculateAmountToFund returns how much src should move into dest so that dest
// reaches its allocation.
//
// An overdrawn dest needs its deficit covered on top of the allocation. When src
// cannot cover the full amount, asMuchPossible settles for src's whole balance.
func calculateAmountToFund(src, dest fundingSide, asMuchPossible bool) (decimal.Decimal, error) {
	if dest.Balance.GreaterThanOrEqual(dest.Allocated) {
		return decimal.Zero, apperrors.Newf(apperrors.CodeAlreadyFunded,
			"%s holds %s of %s allocated", dest.Name, dest.Balance, dest.Allocated)
	}

	var toFund decimal.Decimal
	if dest.Balance.IsPositive() {
		toFund = dest.Allocated.Sub(dest.Balance)
	} else {
		toFund = dest.Balance.Abs().Add(dest.Allocated)
	}

	diff := src.Balance.Sub(toFund)
	if diff.IsNegative() {
		partial := toFund.Add(diff)
		if !asMuchPossible || !partial.IsPositive() {
			return decimal.Zero, apperrors.Newf(apperrors.CodeOverFunding,
				"%s needs %s but %s holds %s", dest.Name, toFund, src.Name, src.Balance)
		}
		return partial, nil
	}
	return toFund, nil
}

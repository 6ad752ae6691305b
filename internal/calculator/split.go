package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// currencyScale is the number of decimal places money is kept at.
const currencyScale = 2

var (
	ErrNoParticipants       = errors.New("must have at least one participant")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrInvalidScale         = errors.New("amount cannot have more than two decimal places")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrSplitMismatch        = errors.New("shares do not add up to the total")
)

// Tolerance is the largest difference between a total and the sum of its
// manually entered shares that is still accepted.
var Tolerance = decimal.New(1, -currencyScale)

// Share is one participant's portion of a cost.
type Share struct {
	Member string
	Amount decimal.Decimal
}

// MismatchError reports manual shares that do not add up to the total.
// Remainder is total minus the sum of the shares: positive when money is
// still unassigned, negative when the shares exceed the total.
type MismatchError struct {
	Remainder decimal.Decimal
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s (remaining: %s)", ErrSplitMismatch, e.Remainder.StringFixed(currencyScale))
}

func (e *MismatchError) Unwrap() error {
	return ErrSplitMismatch
}

// ValidateAmount checks that amount is non-negative and at currency scale.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !amount.Equal(amount.Truncate(currencyScale)) {
		return ErrInvalidScale
	}
	return nil
}

// DistributeEvenly splits total across participants in order. Everyone but the
// last participant gets total/n truncated to cents; the last participant gets
// whatever is left, so the shares always add up to total exactly.
func DistributeEvenly(total decimal.Decimal, participants []string) ([]Share, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if err := ValidateAmount(total); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = true
	}

	n := int64(len(participants))
	even := total.Div(decimal.NewFromInt(n)).Truncate(currencyScale)

	shares := make([]Share, len(participants))
	assigned := decimal.Zero
	for i, p := range participants[:n-1] {
		shares[i] = Share{Member: p, Amount: even}
		assigned = assigned.Add(even)
	}
	shares[n-1] = Share{
		Member: participants[n-1],
		Amount: total.Sub(assigned).Round(currencyScale),
	}
	return shares, nil
}

// ValidateManualSplit checks caller-entered shares against total. It returns a
// *MismatchError carrying the remainder when the shares are off by more than
// Tolerance. It never adjusts the shares.
func ValidateManualSplit(total decimal.Decimal, shares []Share) error {
	if len(shares) == 0 {
		return ErrNoParticipants
	}
	if total.IsNegative() {
		return ErrNegativeAmount
	}
	for _, s := range shares {
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: share for %s", ErrNegativeAmount, s.Member)
		}
	}

	remainder := total.Sub(Sum(shares))
	if remainder.Abs().GreaterThan(Tolerance) {
		return &MismatchError{Remainder: remainder}
	}
	return nil
}

// Sum adds up the share amounts.
func Sum(shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

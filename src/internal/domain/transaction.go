package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// MaxAmount is the largest value a NUMERIC(18,2) column holds. It bounds
// both single amounts and balances.
var MaxAmount = decimal.RequireFromString("9999999999999999.99")

// Exponent and digit bounds checked before any arithmetic, so a value such
// as 1e5000000 is rejected without being expanded.
const (
	maxAmountExponent = 16
	minAmountExponent = -18
	maxAmountDigits   = 36
)

// WithinLimits reports whether amount fits the money columns. It is cheap
// for any input, however large its exponent.
func WithinLimits(amount decimal.Decimal) bool {
	exp := amount.Exponent()
	if exp > maxAmountExponent || exp < minAmountExponent || amount.NumDigits() > maxAmountDigits {
		return false
	}
	return !amount.Abs().GreaterThan(MaxAmount)
}

func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal
}

// Signed returns amount as it affects the balance.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionWithdrawal {
		return amount.Neg()
	}
	return amount
}

type Transaction struct {
	ID        string
	AccountID string
	Type      TransactionType
	Amount    decimal.Decimal
	Timestamp time.Time
}

// Posting is a balance change and its log entry, applied as one unit.
// The balance is written only if it still equals Expected.
type Posting struct {
	AccountID  string
	Expected   decimal.Decimal
	NewBalance decimal.Decimal
	Type       TransactionType
	Amount     decimal.Decimal
}

func ValidateEntry(txType TransactionType, amount decimal.Decimal) error {
	if !txType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, txType)
	}
	if !WithinLimits(amount) || !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	return nil
}

func (p Posting) Validate() error {
	if err := ValidateEntry(p.Type, p.Amount); err != nil {
		return err
	}
	if p.NewBalance.IsNegative() {
		return ErrNegativeBalance
	}
	if !WithinLimits(p.NewBalance) {
		return fmt.Errorf("%w: balance %s exceeds limit", ErrInvalidAmount, p.NewBalance.String())
	}
	if !p.Expected.Add(p.Type.Signed(p.Amount)).Equal(p.NewBalance) {
		return fmt.Errorf("posting does not balance: %s %s %s != %s", p.Expected, p.Type, p.Amount, p.NewBalance)
	}
	return nil
}

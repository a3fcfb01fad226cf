package domain

import (
	"errors"
	"strings"
)

var ErrRecordNotFound = errors.New("Record not found")
var ErrInvalidAmount = errors.New("Invalid amount")
var ErrInsufficientFunds = errors.New("Insufficient Funds")
var ErrNegativeBalance = errors.New("Balance cannot be negative")
var ErrBalanceConflict = errors.New("Balance changed concurrently")
var ErrInvalidTransactionType = errors.New("Invalid transaction type")

// DuplicateFieldError reports a unique user field that collided on write.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	if e.Field == "" {
		return "Field already exists."
	}
	return strings.ToUpper(e.Field[:1]) + e.Field[1:] + " already exists."
}

var ErrInvalidCredentials = errors.New("Invalid credentials")
var ErrAccountNotFound = errors.New("Account not found")
var ErrUserNotFound = errors.New("User not found")
var ErrCustomerNotFound = errors.New("Customer not found or invalid user role")

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CustomerAccount is an account joined with its owner's identity.
type CustomerAccount struct {
	Account
	Username string
	Email    string
	Role     Role
}

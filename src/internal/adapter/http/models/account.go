package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest is the body of deposit and withdraw. Amount may be a JSON
// number or a numeric string.
type AmountRequest struct {
	Amount json.RawMessage `json:"amount"`
}

// ParseAmount returns the requested amount rounded to cents. Missing,
// non-numeric, non-positive, sub-cent and over-limit amounts are rejected.
func (r AmountRequest) ParseAmount() (decimal.Decimal, error) {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, domain.ErrInvalidAmount
		}
		text = strings.TrimSpace(text)
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !domain.WithinLimits(amount) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}

type BalanceChangeResponse struct {
	Message    string `json:"message"`
	NewBalance string `json:"newBalance"`
}

type AccountSummary struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

type TransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Timestamp     string `json:"timestamp"`
}

type DashboardResponse struct {
	Account      AccountSummary        `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

type CustomerSummary struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CustomerTransactionsResponse struct {
	Customer     CustomerSummary       `json:"customer"`
	Account      AccountSummary        `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

type CustomerAccountResponse struct {
	AccountID     string `json:"account_id"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	AccountNumber string `json:"account_number"`
	Balance       string `json:"balance"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func NewAccountSummary(account domain.Account) AccountSummary {
	return AccountSummary{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Balance:       FormatMoney(account.Balance),
	}
}

func NewTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, TransactionResponse{
			TransactionID: tx.ID,
			AccountID:     tx.AccountID,
			Type:          string(tx.Type),
			Amount:        FormatMoney(tx.Amount),
			Timestamp:     tx.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

func NewCustomerAccountResponse(item domain.CustomerAccount) CustomerAccountResponse {
	return CustomerAccountResponse{
		AccountID:     item.ID,
		UserID:        item.UserID,
		Username:      item.Username,
		Email:         item.Email,
		AccountNumber: item.AccountNumber,
		Balance:       FormatMoney(item.Balance),
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

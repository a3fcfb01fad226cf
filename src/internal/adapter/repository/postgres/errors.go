package postgres

import (
	"errors"
	"strings"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/lib/pq"
)

const (
	numericOutOfRange   = "22003"
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

var uniqueConstraintFields = map[string]string{
	"users_username_key":          "username",
	"users_email_key":             "email",
	"accounts_user_id_key":        "user",
	"accounts_account_number_key": "accountNumber",
}

// translateError maps driver errors onto domain errors. Unknown errors are returned as is.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case numericOutOfRange:
		return domain.ErrInvalidAmount
	case foreignKeyViolation:
		return domain.ErrRecordNotFound
	case uniqueViolation:
		return &domain.DuplicateFieldError{Field: constraintField(pqErr.Constraint)}
	case checkViolation:
		if strings.HasPrefix(pqErr.Constraint, "accounts_balance") {
			return domain.ErrNegativeBalance
		}
	}
	return err
}

func constraintField(constraint string) string {
	if field, ok := uniqueConstraintFields[constraint]; ok {
		return field
	}
	return ""
}

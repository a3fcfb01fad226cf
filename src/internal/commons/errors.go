package commons

import (
	"errors"
	"net/http"

	"github.com/api-sage/bank-portal/src/internal/domain"
)

const genericServerMessage = "Something went wrong. Please try again later."

// ResolveError maps a service error to an HTTP status and response body.
// Errors it does not recognise become a 500 with a generic message.
func ResolveError(err error) (int, ErrorBody) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		if len(vErr.Problems) == 1 {
			return http.StatusBadRequest, ErrorResponse(vErr.Problems[0])
		}
		return http.StatusBadRequest, ErrorResponse("Validation failed", vErr.Problems...)
	}

	var dupErr *domain.DuplicateFieldError
	if errors.As(err, &dupErr) {
		return http.StatusConflict, ErrorResponse(dupErr.Error())
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidTransactionType):
		return http.StatusBadRequest, ErrorResponse(err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse(err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, ErrorResponse("Customer not found or invalid user role.")
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrorResponse("Account not found for this customer.")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, ErrorResponse("User not found.")
	case errors.Is(err, domain.ErrBalanceConflict):
		return http.StatusConflict, ErrorResponse("Account is busy. Please retry the transaction.")
	default:
		return http.StatusInternalServerError, ErrorResponse(genericServerMessage)
	}
}

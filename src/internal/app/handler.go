package app

import (
	"net/http"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/controller"
	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-portal/src/internal/adapter/http/router"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/usecase/services"
)

// NewHandler wires services and controllers over storage and returns the
// complete HTTP handler.
func NewHandler(storage *Storage, tokens *auth.TokenRegistry, policy auth.Policy, allowedOrigin string) http.Handler {
	authService := services.NewAuthService(storage.Users, tokens)
	ledgerService := services.NewLedgerService(storage.Accounts, storage.Transactions, storage.Ledger)
	profileService := services.NewProfileService(storage.Users, tokens)
	bankerService := services.NewBankerService(storage.Users, storage.Accounts, storage.Transactions, tokens)

	return router.New(
		middleware.TokenAuth(tokens, policy),
		allowedOrigin,
		controller.NewHealthController(),
		controller.NewAuthController(authService),
		controller.NewCustomerController(ledgerService, profileService),
		controller.NewBankerController(bankerService),
	)
}

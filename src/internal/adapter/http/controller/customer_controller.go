package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/commons"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type CustomerController struct {
	ledger  service_interfaces.LedgerService
	profile service_interfaces.ProfileService
}

func NewCustomerController(ledger service_interfaces.LedgerService, profile service_interfaces.ProfileService) *CustomerController {
	return &CustomerController{ledger: ledger, profile: profile}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authorize middleware.Authorizer) {
	mux.Handle("GET /customer/dashboard", authorize(auth.OpViewDashboard)(http.HandlerFunc(c.dashboard)))
	mux.Handle("POST /customer/deposit", authorize(auth.OpDeposit)(http.HandlerFunc(c.deposit)))
	mux.Handle("POST /customer/withdraw", authorize(auth.OpWithdraw)(http.HandlerFunc(c.withdraw)))
	mux.Handle("PUT /customer/profile", authorize(auth.OpUpdateProfile)(http.HandlerFunc(c.updateProfile)))
}

func (c *CustomerController) dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	principal, _ := middleware.PrincipalFromContext(r.Context())
	response, err := c.ledger.GetDashboard(r.Context(), principal.UserID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *CustomerController) deposit(w http.ResponseWriter, r *http.Request) {
	c.changeBalance(w, r, "Invalid deposit amount.", c.ledger.Deposit)
}

func (c *CustomerController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.changeBalance(w, r, "Invalid withdrawal amount.", c.ledger.Withdraw)
}

type balanceChange func(ctx context.Context, userID string, amount decimal.Decimal) (models.BalanceChangeResponse, error)

func (c *CustomerController) changeBalance(w http.ResponseWriter, r *http.Request, invalidMessage string, apply balanceChange) {
	start := time.Now()

	var req models.AmountRequest
	if err := decodeBody(r, &req); err != nil {
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse(invalidMessage), start)
		return
	}
	logRequest(r, req)

	amount, err := req.ParseAmount()
	if err != nil {
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse(invalidMessage), start)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	response, err := apply(r.Context(), principal.UserID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			respond(w, r, http.StatusBadRequest, commons.ErrorResponse(invalidMessage), start)
			return
		}
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *CustomerController) updateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err, start)
		return
	}
	logRequest(r, req)

	principal, _ := middleware.PrincipalFromContext(r.Context())
	response, err := c.profile.UpdateProfile(r.Context(), principal, req)
	if err != nil {
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

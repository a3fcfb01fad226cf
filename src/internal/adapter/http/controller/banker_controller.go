package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/api-sage/bank-portal/src/internal/usecase/service_interfaces"
)

type BankerController struct {
	service service_interfaces.BankerService
}

func NewBankerController(service service_interfaces.BankerService) *BankerController {
	return &BankerController{service: service}
}

func (c *BankerController) RegisterRoutes(mux *http.ServeMux, authorize middleware.Authorizer) {
	mux.Handle("GET /banker/accounts", authorize(auth.OpListAccounts)(http.HandlerFunc(c.listAccounts)))
	mux.Handle("GET /banker/accounts/{userId}/transactions", authorize(auth.OpViewCustomerTransactions)(http.HandlerFunc(c.customerTransactions)))
	mux.Handle("PUT /banker/users/{userId}", authorize(auth.OpUpdateUser)(http.HandlerFunc(c.updateUser)))
}

func (c *BankerController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListCustomerAccounts(r.Context())
	if err != nil {
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *BankerController) customerTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := r.PathValue("userId")
	logRequest(r, logger.Fields{"userId": userID})

	response, err := c.service.GetCustomerTransactions(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *BankerController) updateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := r.PathValue("userId")

	var req models.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err, start)
		return
	}
	logRequest(r, req)

	principal, _ := middleware.PrincipalFromContext(r.Context())
	response, err := c.service.UpdateUser(r.Context(), principal, userID, req)
	if err != nil {
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

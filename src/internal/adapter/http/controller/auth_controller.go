package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/usecase/service_interfaces"
)

type AuthController struct {
	service service_interfaces.AuthService
}

func NewAuthController(service service_interfaces.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) RegisterRoutes(mux *http.ServeMux, authorize middleware.Authorizer) {
	mux.HandleFunc("POST /auth/login", c.login)
	mux.Handle("POST /auth/logout", authorize(auth.OpLogout)(http.HandlerFunc(c.logout)))
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Login(r.Context(), req)
	if err != nil {
		respondError(w, r, err, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response := c.service.Logout(r.Context(), middleware.TokenFromContext(r.Context()))
	respond(w, r, http.StatusOK, response, start)
}

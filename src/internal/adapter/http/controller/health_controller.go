package controller

import (
	"net/http"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-portal/src/internal/commons"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (c *HealthController) RegisterRoutes(mux *http.ServeMux, _ middleware.Authorizer) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, commons.StatusResponse{Status: "ok"})
	})
}

package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	Logout(ctx context.Context, token string) models.MessageResponse
}

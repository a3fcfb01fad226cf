package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
)

type ProfileService interface {
	UpdateProfile(ctx context.Context, actor auth.Principal, req models.UpdateUserRequest) (models.UpdateUserResponse, error)
}

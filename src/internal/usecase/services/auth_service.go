package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
)

type AuthService struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenRegistry
}

func NewAuthService(userRepo domain.UserRepository, tokens *auth.TokenRegistry) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return models.LoginResponse{}, err
	}

	identifier := strings.TrimSpace(req.Username)
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Info("auth service login unknown identifier", logger.Fields{
				"identifier": identifier,
			})
			return models.LoginResponse{}, domain.ErrInvalidCredentials
		}
		logger.Error("auth service login lookup failed", err, logger.Fields{
			"identifier": identifier,
		})
		return models.LoginResponse{}, fmt.Errorf("login lookup: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		logger.Error("auth service login password compare failed", err, logger.Fields{
			"userId": user.ID,
		})
		return models.LoginResponse{}, err
	}
	if !ok {
		logger.Info("auth service login password mismatch", logger.Fields{
			"userId": user.ID,
		})
		return models.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := auth.NewToken()
	if err != nil {
		logger.Error("auth service login token generation failed", err, nil)
		return models.LoginResponse{}, fmt.Errorf("generate access token: %w", err)
	}
	s.tokens.Register(token, user.ID, user.Role)

	logger.Info("auth service login success", logger.Fields{
		"userId":      user.ID,
		"role":        user.Role,
		"tokenPrefix": logger.MaskToken(token),
	})

	return models.LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		User: models.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	}, nil
}

func (s *AuthService) Logout(_ context.Context, token string) models.MessageResponse {
	s.tokens.Invalidate(token)

	logger.Info("auth service logout", logger.Fields{
		"tokenPrefix": logger.MaskToken(token),
	})

	return models.MessageResponse{Message: "Logged out successfully"}
}

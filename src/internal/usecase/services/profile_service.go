package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
)

const reauthenticateMessage = "Your profile updated successfully. Please log in again with new credentials."

type ProfileService struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenRegistry
}

func NewProfileService(userRepo domain.UserRepository, tokens *auth.TokenRegistry) *ProfileService {
	return &ProfileService{userRepo: userRepo, tokens: tokens}
}

// UpdateProfile changes the caller's own credentials. Any change logs the
// caller out of every session.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor auth.Principal, req models.UpdateUserRequest) (models.UpdateUserResponse, error) {
	logger.Info("profile service update request", logger.Fields{
		"userId":  actor.UserID,
		"payload": logger.SanitizePayload(req),
	})

	changed, err := updateUser(ctx, s.userRepo, actor.UserID, req)
	if err != nil {
		return models.UpdateUserResponse{}, err
	}
	if !changed {
		return models.UpdateUserResponse{Message: "Profile updated successfully."}, nil
	}

	removed := s.tokens.InvalidateUser(actor.UserID)
	logger.Info("profile service update success", logger.Fields{
		"userId":        actor.UserID,
		"revokedTokens": removed,
	})
	return models.UpdateUserResponse{Message: reauthenticateMessage, Reauthenticate: true}, nil
}

// updateUser validates req, hashes any new password and writes the change.
// It reports whether a credential field was actually written.
func updateUser(ctx context.Context, userRepo domain.UserRepository, userID string, req models.UpdateUserRequest) (bool, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return false, err
	}

	update := domain.UserUpdate{Username: req.Username, Email: req.Email}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			logger.Error("user update password hash failed", err, logger.Fields{
				"userId": userID,
			})
			return false, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &hash
	}

	if update.Empty() {
		if _, err := userRepo.GetByID(ctx, userID); err != nil {
			return false, userLookupError(userID, err)
		}
		return false, nil
	}

	if _, err := userRepo.Update(ctx, userID, update); err != nil {
		var dupErr *domain.DuplicateFieldError
		if errors.As(err, &dupErr) {
			logger.Info("user update duplicate field", logger.Fields{
				"userId": userID,
				"field":  dupErr.Field,
			})
			return false, dupErr
		}
		return false, userLookupError(userID, err)
	}
	return true, nil
}

func userLookupError(userID string, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	logger.Error("user update failed", err, logger.Fields{
		"userId": userID,
	})
	return fmt.Errorf("update user: %w", err)
}

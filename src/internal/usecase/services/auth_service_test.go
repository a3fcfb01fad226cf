package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/usecase/services"
)

func TestAuthServiceLoginValidationError(t *testing.T) {
	svc := services.NewAuthService(nil, auth.NewTokenRegistry())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthServiceLoginWrongThenRightPassword(t *testing.T) {
	store := memory.NewStore()
	banker := createUser(t, store, "admin", "admin123", domain.RoleBanker)
	tokens := auth.NewTokenRegistry()
	svc := services.NewAuthService(store.Users(), tokens)
	ctx := context.Background()

	if _, err := svc.Login(ctx, models.LoginRequest{Username: "admin", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "admin123"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if tokens.Len() != 0 {
		t.Fatalf("failed logins must not issue tokens, registry has %d", tokens.Len())
	}

	resp, err := svc.Login(ctx, models.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Message != "Login successful" || resp.User.Role != "banker" || resp.User.ID != banker.ID {
		t.Fatalf("unexpected login response %+v", resp)
	}
	if len(resp.AccessToken) != 32 {
		t.Fatalf("expected 32 char token, got %q", resp.AccessToken)
	}

	principal, ok := tokens.Resolve(resp.AccessToken)
	if !ok || principal.UserID != banker.ID || principal.Role != domain.RoleBanker {
		t.Fatalf("token resolved to %+v, %v", principal, ok)
	}
}

func TestAuthServiceLoginByEmail(t *testing.T) {
	store := memory.NewStore()
	createUser(t, store, "shubham", "123456", domain.RoleCustomer)
	svc := services.NewAuthService(store.Users(), auth.NewTokenRegistry())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "Shubham@Bank.com", Password: "123456"})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if resp.User.Username != "shubham" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
}

func TestAuthServiceLogout(t *testing.T) {
	store := memory.NewStore()
	createUser(t, store, "shubham", "123456", domain.RoleCustomer)
	tokens := auth.NewTokenRegistry()
	svc := services.NewAuthService(store.Users(), tokens)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "shubham", Password: "123456"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	out := svc.Logout(context.Background(), resp.AccessToken)
	if out.Message != "Logged out successfully" {
		t.Fatalf("unexpected logout message %q", out.Message)
	}
	if _, ok := tokens.Resolve(resp.AccessToken); ok {
		t.Fatal("expected token to be invalidated")
	}
}

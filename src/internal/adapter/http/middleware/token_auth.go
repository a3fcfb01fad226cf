package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/commons"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
)

// Authorizer builds the middleware guarding one operation.
type Authorizer func(op auth.Operation) func(http.Handler) http.Handler

type contextKey int

const (
	principalKey contextKey = iota
	tokenKey
)

// TokenAuth resolves the Authorization header against the registry and
// checks the resolved role against the policy before calling next.
func TokenAuth(tokens *auth.TokenRegistry, policy auth.Policy) Authorizer {
	return func(op auth.Operation) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				token := bearerToken(r.Header.Get("Authorization"))
				if token == "" {
					logger.Info("token auth middleware missing header", logger.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					writeError(w, http.StatusUnauthorized, "Authorization header missing")
					return
				}

				principal, ok := tokens.Resolve(token)
				if !ok {
					logger.Info("token auth middleware unknown token", logger.Fields{
						"method":      r.Method,
						"path":        r.URL.Path,
						"tokenPrefix": logger.MaskToken(token),
					})
					writeError(w, http.StatusForbidden, "Invalid or expired token")
					return
				}

				if !policy.Allow(principal.Role, op) {
					logger.Info("token auth middleware role denied", logger.Fields{
						"method":    r.Method,
						"path":      r.URL.Path,
						"userId":    principal.UserID,
						"role":      principal.Role,
						"operation": op,
					})
					writeError(w, http.StatusForbidden, deniedMessage(policy.RequiredRoles(op)))
					return
				}

				ctx := context.WithValue(r.Context(), principalKey, principal)
				ctx = context.WithValue(ctx, tokenKey, token)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}
}

func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(auth.Principal)
	return principal, ok
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// bearerToken accepts the raw token or one prefixed with "Bearer ".
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}

func deniedMessage(roles []domain.Role) string {
	if len(roles) == 1 {
		role := string(roles[0])
		return "Access denied: " + strings.ToUpper(role[:1]) + role[1:] + " role required"
	}
	return "Access denied"
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse(message))
}

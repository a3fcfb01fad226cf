package auth

import (
	"strings"
	"sync"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/google/uuid"
)

// Principal is the identity a bearer token resolves to.
type Principal struct {
	UserID string
	Role   domain.Role
}

// TokenRegistry is the sole source of truth for which access tokens are live.
// Entries have no expiry; they last until invalidated or the registry is closed.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]Principal
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{tokens: make(map[string]Principal)}
}

// NewToken returns an opaque random token with no embedded claims.
func NewToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

func (r *TokenRegistry) Register(token string, userID string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = Principal{UserID: userID, Role: role}
}

func (r *TokenRegistry) Resolve(token string) (Principal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.tokens[token]
	return p, ok
}

func (r *TokenRegistry) Invalidate(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// InvalidateUser drops every token issued to userID and reports how many were removed.
func (r *TokenRegistry) InvalidateUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, p := range r.tokens {
		if p.UserID == userID {
			delete(r.tokens, token)
			removed++
		}
	}
	return removed
}

func (r *TokenRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

// Close forgets all tokens. Called when the server stops.
func (r *TokenRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.tokens)
}

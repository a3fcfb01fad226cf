package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	FindByIdentifier(ctx context.Context, identifier string) (User, error)
	Update(ctx context.Context, id string, update UserUpdate) (User, error)
}

// ResettableUserRepository can also remove every user, which cascades to
// their accounts and transactions.
type ResettableUserRepository interface {
	UserRepository
	DeleteAll(ctx context.Context) error
}

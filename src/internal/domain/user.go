package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBanker   Role = "banker"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleBanker
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the optional credential fields of a profile change.
// PasswordHash is already hashed; plaintext never reaches a repository.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}

// Apply returns a copy of user with the update's fields set.
func (u UserUpdate) Apply(user User) User {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
	return user
}

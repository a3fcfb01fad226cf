package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
)

type UserRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	logger.Info("user repository create", logger.Fields{
		"username": user.Username,
		"role":     user.Role,
	})

	const query = `
INSERT INTO users (
	username,
	email,
	password_hash,
	role
) VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

	var created domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
	), &created); err != nil {
		err = translateError(err)
		logger.Error("user repository create failed", err, logger.Fields{
			"username": user.Username,
		})
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user repository create success", logger.Fields{
		"userId":   created.ID,
		"username": created.Username,
	})

	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	logger.Info("user repository get by id", logger.Fields{
		"userId": id,
	})

	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id::text = $1`

	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("user repository record not found", logger.Fields{
				"userId": id,
			})
			return domain.User{}, domain.ErrRecordNotFound
		}
		logger.Error("user repository get by id failed", err, logger.Fields{
			"userId": id,
		})
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	logger.Info("user repository find by identifier", logger.Fields{
		"identifier": identifier,
	})

	const query = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1
   OR LOWER(email) = LOWER($1)
ORDER BY (username = $1) DESC
LIMIT 1`

	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, identifier), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("user repository identifier not found", logger.Fields{
				"identifier": identifier,
			})
			return domain.User{}, domain.ErrRecordNotFound
		}
		logger.Error("user repository find by identifier failed", err, logger.Fields{
			"identifier": identifier,
		})
		return domain.User{}, fmt.Errorf("find user by identifier: %w", err)
	}

	logger.Info("user repository find by identifier success", logger.Fields{
		"userId": user.ID,
	})

	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update domain.UserUpdate) (domain.User, error) {
	logger.Info("user repository update", logger.Fields{
		"userId":          id,
		"usernameChanged": update.Username != nil,
		"emailChanged":    update.Email != nil,
		"passwordChanged": update.PasswordHash != nil,
	})

	const query = `
UPDATE users
SET username = COALESCE($2, username),
	email = COALESCE($3, email),
	password_hash = COALESCE($4, password_hash),
	updated_at = NOW()
WHERE id::text = $1
RETURNING ` + userColumns

	var updated domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		id,
		nullableString(update.Username),
		nullableString(update.Email),
		nullableString(update.PasswordHash),
	), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("user repository record not found for update", logger.Fields{
				"userId": id,
			})
			return domain.User{}, domain.ErrRecordNotFound
		}
		err = translateError(err)
		logger.Error("user repository update failed", err, logger.Fields{
			"userId": id,
		})
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	logger.Info("user repository update success", logger.Fields{
		"userId": updated.ID,
	})

	return updated, nil
}

// DeleteAll removes every user; accounts and transactions cascade.
func (r *UserRepository) DeleteAll(ctx context.Context) error {
	logger.Info("user repository delete all", nil)

	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		logger.Error("user repository delete all failed", err, nil)
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

func scanUser(row rowScanner, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

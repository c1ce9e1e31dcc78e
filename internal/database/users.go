package database

import (
	"context"
	"sejf-plikow/internal/models"
)

const userColumns = `id, username, email, password_hash, full_name, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
}

// CreateUser inserts a user. Concurrent registrations of the same username or
// email are arbitrated by the unique constraints: exactly one insert wins and
// the rest get ErrDuplicateUsername or ErrDuplicateEmail.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := q.db.QueryRow(ctx, query, arg.Username, arg.Email, arg.PasswordHash, arg.FullName)
	return scanUser(row)
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(q.db.QueryRow(ctx, query, username))
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

type UpdateUserProfileParams struct {
	ID       int64
	FullName *string
	Email    *string
}

// UpdateUserProfile changes only the fields that are non-nil.
func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (*models.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
			email = COALESCE($3, email),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(q.db.QueryRow(ctx, query, arg.ID, arg.FullName, arg.Email))
}

// SetUserActive toggles the soft-disable flag. Users are never deleted.
func (q *Queries) SetUserActive(ctx context.Context, id int64, active bool) error {
	res, err := q.db.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username is already taken")
	ErrDuplicateEmail    = errors.New("email is already registered")
	ErrDuplicateName     = errors.New("an item with the same name already exists in this folder")
)

const pgUniqueViolation = "23505"

// mapError turns pgx errors into the package's sentinel errors. Uniqueness is
// decided by the constraint that fired, never by a read-before-write check.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrDuplicateUsername
		case "users_email_key":
			return ErrDuplicateEmail
		case "folders_owner_parent_name_key", "files_owner_folder_name_key":
			return ErrDuplicateName
		}
	}

	return err
}

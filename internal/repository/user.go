package repository

import (
	"context"

	"filebox/internal/model"
)

// UserRepository defines data access for user accounts.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user and returns the stored row with the
	// database-assigned id and timestamps populated. A duplicate email
	// violates the unique constraint and surfaces as a store error.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByEmail returns the user with the given email, or sql.ErrNoRows.
	// Matching is exact (case-sensitive) against the stored value.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

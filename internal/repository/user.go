package repository

import (
	"context"

	"github.com/Aasthak07/QuillStack-AI/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns the stored row.
	// A duplicate email yields an error wrapping ErrDuplicateKey.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]model.User, error)

	// Update persists name, email, and admin flag for an existing user.
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// Delete removes a user by ID. Returns sql.ErrNoRows when the row does not exist.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// CountAdmins returns the number of users with the admin flag set.
	CountAdmins(ctx context.Context) (int, error)
}

package repositories

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// AccountRepository defines the interface for account data operations.
// Lookups return nil, nil when nothing matches.
type AccountRepository interface {
	// GetByUsername retrieves an account by its username
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)

	// List retrieves every account ordered by username
	List(ctx context.Context) ([]*entities.Account, error)

	// Create inserts a new account
	Create(ctx context.Context, account *entities.Account) error

	// Update writes the profile fields of an account
	Update(ctx context.Context, account *entities.Account) error

	// UpdatePassword stores a new password hash
	UpdatePassword(ctx context.Context, username, passwordHash string) error

	// Delete removes an account and reports whether it existed
	Delete(ctx context.Context, username string) (bool, error)

	// Count counts accounts, optionally restricted to one role
	Count(ctx context.Context, role entities.Role) (int64, error)
}

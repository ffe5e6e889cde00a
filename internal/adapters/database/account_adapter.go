package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
)

// AccountAdapter implements the AccountRepository interface
type AccountAdapter struct {
	exec   sqlite.Executor
	mapper *Mapper[entities.Account, *entities.Account]
}

// NewAccountAdapter creates a new account adapter
func NewAccountAdapter(exec sqlite.Executor) repositories.AccountRepository {
	return &AccountAdapter{
		exec:   exec,
		mapper: NewMapper[entities.Account](exec),
	}
}

// GetByUsername retrieves an account by its username
func (a *AccountAdapter) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	return a.mapper.Find(ctx, username)
}

// List retrieves every account ordered by username
func (a *AccountAdapter) List(ctx context.Context) ([]*entities.Account, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("username")})
}

// Create inserts a new account
func (a *AccountAdapter) Create(ctx context.Context, account *entities.Account) error {
	return a.mapper.Insert(ctx, account)
}

// Update writes the profile fields of an account
func (a *AccountAdapter) Update(ctx context.Context, account *entities.Account) error {
	return a.mapper.Save(ctx, account)
}

// UpdatePassword stores a new password hash
func (a *AccountAdapter) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	_, err := a.exec.Update(ctx, "accounts",
		goqu.Record{"password_hash": passwordHash},
		goqu.C("username").Eq(username))
	return err
}

// Delete removes an account and reports whether it existed
func (a *AccountAdapter) Delete(ctx context.Context, username string) (bool, error) {
	return a.mapper.DeleteByKey(ctx, username)
}

// Count counts accounts, optionally restricted to one role
func (a *AccountAdapter) Count(ctx context.Context, role entities.Role) (int64, error) {
	if role == "" {
		return a.mapper.Count(ctx)
	}
	return a.mapper.Count(ctx, Eq("role", string(role)))
}

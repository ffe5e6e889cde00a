package services

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// Identity is the authenticated caller of a request
type Identity struct {
	Username string        `json:"username"`
	Role     entities.Role `json:"role"`
	TokenID  string        `json:"-"`
}

type identityKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller set by WithIdentity
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

func (i *Identity) IsAdmin() bool  { return i != nil && i.Role == entities.RoleAdmin }
func (i *Identity) IsDoctor() bool { return i != nil && i.Role == entities.RoleDoctor }
func (i *Identity) IsStaff() bool  { return i != nil && i.Role == entities.RoleStaff }

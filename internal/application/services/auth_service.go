package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/utils"
	"github.com/CoderFake/healthcare-system/pkg/validation"
)

const errBadCredentials = "invalid username or password"

// Session is issued by a successful login
type Session struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Account   *entities.Account `json:"account"`
}

// AuthService handles login sessions and account management
type AuthService struct {
	accounts repositories.AccountRepository
	secret   string
	ttl      time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(accounts repositories.AccountRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		accounts: accounts,
		secret:   secret,
		ttl:      ttl,
		revoked:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login verifies the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, username, password string) (_ *Session, err error) {
	ctx, done := track(ctx, "AuthService.Login")
	defer done(&err)

	username = strings.TrimSpace(username)
	errs := map[string]string{}
	if !validation.Required(username) {
		errs["username"] = "is required"
	}
	if !validation.Required(password) {
		errs["password"] = "is required"
	}
	if err := invalid(errs); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.CheckPassword(password) {
		return nil, apperrors.NewUnauthorizedError(errBadCredentials)
	}

	token, expiresAt, err := utils.GenerateToken(s.secret, account.Username, string(account.Role), s.ttl)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to sign session token", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// ParseToken resolves a bearer token to the identity it was issued for
func (s *AuthService) ParseToken(ctx context.Context, token string) (*Identity, error) {
	claims, err := utils.ValidateToken(s.secret, token)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, apperrors.NewUnauthorizedError("session has ended")
	}

	return &Identity{Username: claims.Username, Role: entities.Role(claims.Role), TokenID: claims.ID}, nil
}

// Logout ends the session of token. Ending an already ended session succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) (err error) {
	_, done := track(ctx, "AuthService.Logout")
	defer done(&err)

	claims, err := utils.ValidateToken(s.secret, token)
	if err != nil {
		return apperrors.NewUnauthorizedError("invalid or expired token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	expiresAt := now.Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.revoked[claims.ID] = expiresAt
	return nil
}

// CurrentUser loads the account of the caller
func (s *AuthService) CurrentUser(ctx context.Context) (*entities.Account, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("not logged in")
	}
	account, err := s.accounts.GetByUsername(ctx, id.Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.NewUnauthorizedError("account no longer exists")
	}
	return account, nil
}

func (s *AuthService) IsAdmin(ctx context.Context) bool {
	id, _ := IdentityFromContext(ctx)
	return id.IsAdmin()
}

func (s *AuthService) IsDoctor(ctx context.Context) bool {
	id, _ := IdentityFromContext(ctx)
	return id.IsDoctor()
}

func (s *AuthService) IsStaff(ctx context.Context) bool {
	id, _ := IdentityFromContext(ctx)
	return id.IsStaff()
}

// ChangePassword replaces the caller's password after checking the old one
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (err error) {
	ctx, done := track(ctx, "AuthService.ChangePassword")
	defer done(&err)

	account, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !account.CheckPassword(oldPassword) {
		return apperrors.NewFieldValidationError(map[string]string{"old_password": "is incorrect"})
	}
	if !validation.Password(newPassword) {
		return apperrors.NewFieldValidationError(map[string]string{"new_password": "must be at least 6 characters"})
	}

	account.SetPassword(newPassword)
	return s.accounts.UpdatePassword(ctx, account.Username, account.PasswordHash)
}

// ResetPassword sets another account's password; admin only
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) (err error) {
	ctx, done := track(ctx, "AuthService.ResetPassword")
	defer done(&err)

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if !validation.Password(newPassword) {
		return apperrors.NewFieldValidationError(map[string]string{"new_password": "must be at least 6 characters"})
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.NewNotFoundError("account not found")
	}

	account.SetPassword(newPassword)
	return s.accounts.UpdatePassword(ctx, account.Username, account.PasswordHash)
}

// CreateAccount registers a login; admin only
func (s *AuthService) CreateAccount(ctx context.Context, fields entities.Fields) (_ *entities.Account, err error) {
	ctx, done := track(ctx, "AuthService.CreateAccount")
	defer done(&err)

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := invalid(validation.Account(fields)); err != nil {
		return nil, err
	}

	account, err := entities.NewAccountFromFields(fields)
	if err != nil {
		return nil, err
	}
	existing, err := s.accounts.GetByUsername(ctx, account.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewFieldConflictError("username", "is already taken")
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts lists every login; admin only
func (s *AuthService) ListAccounts(ctx context.Context) (_ []*entities.Account, err error) {
	ctx, done := track(ctx, "AuthService.ListAccounts")
	defer done(&err)

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.accounts.List(ctx)
}

// DeleteAccount removes a login other than the caller's own; admin only
func (s *AuthService) DeleteAccount(ctx context.Context, username string) (err error) {
	ctx, done := track(ctx, "AuthService.DeleteAccount")
	defer done(&err)

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if id, _ := IdentityFromContext(ctx); id.Username == username {
		return apperrors.NewValidationError("cannot delete the account you are logged in with")
	}

	removed, err := s.accounts.Delete(ctx, username)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError("account not found")
	}
	return nil
}

func (s *AuthService) requireAdmin(ctx context.Context) error {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return apperrors.NewUnauthorizedError("not logged in")
	}
	if !id.IsAdmin() {
		return apperrors.NewForbiddenError("administrator role required")
	}
	return nil
}

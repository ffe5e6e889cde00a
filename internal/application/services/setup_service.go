package services

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	"github.com/CoderFake/healthcare-system/pkg/config"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/validation"
)

// SchemaMigrator creates the base schema and applies pending migration files
type SchemaMigrator interface {
	EnsureBaseSchema(ctx context.Context) error
	Up(ctx context.Context) ([]string, error)
}

// SetupReport describes what a setup run changed
type SetupReport struct {
	Migrations     []string `json:"migrations"`
	SettingsSeeded []string `json:"settings_seeded"`
	AdminCreated   bool     `json:"admin_created"`
}

// SetupService prepares a database for first use. Running it again only
// applies what is missing.
type SetupService struct {
	migrator SchemaMigrator
	store    repositories.Store
	cfg      *config.Config
}

// NewSetupService creates a new setup service
func NewSetupService(migrator SchemaMigrator, store repositories.Store, cfg *config.Config) *SetupService {
	return &SetupService{migrator: migrator, store: store, cfg: cfg}
}

// Run creates the schema, applies migrations, seeds default settings and
// creates the administrator when absent.
func (s *SetupService) Run(ctx context.Context) (_ *SetupReport, err error) {
	ctx, done := track(ctx, "SetupService.Run")
	defer done(&err)

	logger := observability.LoggerFromContext(ctx)
	report := &SetupReport{}

	if err := s.migrator.EnsureBaseSchema(ctx); err != nil {
		return nil, err
	}
	applied, err := s.migrator.Up(ctx)
	report.Migrations = applied
	if err != nil {
		return report, err
	}

	err = s.store.WithinTx(ctx, func(tx repositories.Registry) error {
		for _, setting := range DefaultSettings(s.cfg.App, s.cfg.Schedule) {
			existing, err := tx.Settings().Get(ctx, setting.Key)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := tx.Settings().Upsert(ctx, setting); err != nil {
				return err
			}
			report.SettingsSeeded = append(report.SettingsSeeded, setting.Key)
		}

		created, err := s.seedAdmin(ctx, tx)
		report.AdminCreated = created
		return err
	})
	if err != nil {
		return report, err
	}

	logger.Info().
		Int("migrations", len(report.Migrations)).
		Int("settings_seeded", len(report.SettingsSeeded)).
		Bool("admin_created", report.AdminCreated).
		Msg("database setup complete")
	return report, nil
}

func (s *SetupService) seedAdmin(ctx context.Context, tx repositories.Registry) (bool, error) {
	admin := s.cfg.Admin
	existing, err := tx.Accounts().GetByUsername(ctx, admin.Username)
	if err != nil || existing != nil {
		return false, err
	}

	fields := entities.Fields{
		"username":  admin.Username,
		"password":  admin.Password,
		"full_name": admin.FullName,
		"gender":    admin.Gender,
		"role":      string(entities.RoleAdmin),
		"phone":     admin.Phone,
		"email":     admin.Email,
	}
	if err := invalid(validation.Account(fields)); err != nil {
		return false, apperrors.NewValidationError("administrator configuration is invalid: " + err.Error())
	}
	account, err := entities.NewAccountFromFields(fields)
	if err != nil {
		return false, err
	}
	if err := tx.Accounts().Create(ctx, account); err != nil {
		return false, err
	}
	return true, nil
}

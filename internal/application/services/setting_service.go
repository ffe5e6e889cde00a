package services

import (
	"context"
	"strings"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	"github.com/CoderFake/healthcare-system/pkg/config"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// Setting keys read by the application
const (
	SettingClinicName               = "clinic_name"
	SettingMaxAppointmentsPerDay    = "max_appointments_per_day"
	SettingMaxAppointmentsPerDoctor = "max_appointments_per_doctor"
	SettingSlotIntervalMinutes      = "slot_interval_minutes"
	SettingWorkingHoursStart        = "working_hours_start"
	SettingWorkingHoursEnd          = "working_hours_end"
)

// SetOptions overrides what Set would otherwise infer
type SetOptions struct {
	Type        string
	Description string
}

// DefaultSettings returns the settings seeded into a fresh database
func DefaultSettings(app config.AppConfig, schedule config.ScheduleConfig) []*entities.AppSetting {
	describe := func(s *entities.AppSetting, d string) *entities.AppSetting {
		s.Description = &d
		return s
	}
	return []*entities.AppSetting{
		describe(entities.NewAppSetting(SettingClinicName, app.Name, ""), "Clinic name shown on exports"),
		describe(entities.NewAppSetting(SettingMaxAppointmentsPerDay, schedule.MaxAppointmentsPerDay, ""), "Appointments accepted per day, all doctors"),
		describe(entities.NewAppSetting(SettingMaxAppointmentsPerDoctor, schedule.MaxAppointmentsPerDoctor, ""), "Appointments accepted per doctor per day"),
		describe(entities.NewAppSetting(SettingSlotIntervalMinutes, schedule.SlotIntervalMinutes, ""), "Minutes between bookable slots"),
		describe(entities.NewAppSetting(SettingWorkingHoursStart, schedule.SlotStartHour, ""), "Hour of the first slot"),
		describe(entities.NewAppSetting(SettingWorkingHoursEnd, schedule.SlotEndHour, ""), "Hour of the last slot"),
	}
}

// SettingService reads and writes typed application settings
type SettingService struct {
	repo repositories.SettingRepository
}

// NewSettingService creates a new setting service
func NewSettingService(repo repositories.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// List retrieves every setting ordered by key
func (s *SettingService) List(ctx context.Context) ([]*entities.AppSetting, error) {
	return s.repo.List(ctx)
}

// Get returns the typed value of key and whether it is set
func (s *SettingService) Get(ctx context.Context, key string) (interface{}, bool, error) {
	return lookupSetting(ctx, s.repo, key)
}

// GetInt returns key as an int, or def when unset or not an int
func (s *SettingService) GetInt(ctx context.Context, key string, def int) int {
	return settingInt(ctx, s.repo, key, def)
}

// GetBool returns key as a bool, or def when unset
func (s *SettingService) GetBool(ctx context.Context, key string, def bool) bool {
	v, ok, err := lookupSetting(ctx, s.repo, key)
	if err != nil || !ok {
		return def
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	return def
}

// GetString returns the stored text of key, or def when unset
func (s *SettingService) GetString(ctx context.Context, key, def string) string {
	setting, err := s.repo.Get(ctx, key)
	if err != nil || setting == nil {
		return def
	}
	return setting.Value
}

// Set stores value under key. The type tag is inferred from value unless
// opts.Type is given; a value that does not coerce to its type is rejected.
func (s *SettingService) Set(ctx context.Context, key string, value interface{}, opts SetOptions) (_ *entities.AppSetting, err error) {
	ctx, done := track(ctx, "SettingService.Set")
	defer done(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.NewFieldValidationError(map[string]string{"key": "is required"})
	}
	switch opts.Type {
	case "", entities.SettingTypeInt, entities.SettingTypeFloat, entities.SettingTypeBool, entities.SettingTypeString:
	default:
		return nil, apperrors.NewFieldValidationError(map[string]string{"type": "must be int, float, bool or string"})
	}

	setting := entities.NewAppSetting(key, value, opts.Type)
	if opts.Description != "" {
		setting.Description = &opts.Description
	}
	if _, err := setting.Typed(); err != nil {
		return nil, apperrors.NewFieldValidationError(map[string]string{"value": err.Error()})
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func lookupSetting(ctx context.Context, repo repositories.SettingRepository, key string) (interface{}, bool, error) {
	setting, err := repo.Get(ctx, key)
	if err != nil || setting == nil {
		return nil, false, err
	}
	v, err := setting.Typed()
	if err != nil {
		return nil, false, apperrors.NewValidationError(err.Error())
	}
	return v, true, nil
}

func settingInt(ctx context.Context, repo repositories.SettingRepository, key string, def int) int {
	v, ok, err := lookupSetting(ctx, repo, key)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("falling back to default setting")
		return def
	}
	if n, isInt := v.(int); ok && isInt {
		return n
	}
	return def
}

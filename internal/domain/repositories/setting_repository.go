package repositories

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	// Get retrieves a setting by key
	Get(ctx context.Context, key string) (*entities.AppSetting, error)

	// List retrieves every setting ordered by key
	List(ctx context.Context) ([]*entities.AppSetting, error)

	// Upsert inserts the setting or replaces the stored value
	Upsert(ctx context.Context, setting *entities.AppSetting) error
}

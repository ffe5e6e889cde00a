package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/pkg/utils"
)

// SettingAdapter implements the SettingRepository interface
type SettingAdapter struct {
	exec   sqlite.Executor
	mapper *Mapper[entities.AppSetting, *entities.AppSetting]
}

// NewSettingAdapter creates a new setting adapter
func NewSettingAdapter(exec sqlite.Executor) repositories.SettingRepository {
	return &SettingAdapter{
		exec:   exec,
		mapper: NewMapper[entities.AppSetting](exec),
	}
}

func (a *SettingAdapter) Get(ctx context.Context, key string) (*entities.AppSetting, error) {
	return a.mapper.Find(ctx, key)
}

func (a *SettingAdapter) List(ctx context.Context) ([]*entities.AppSetting, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("setting_key")})
}

// Upsert inserts the setting or replaces the stored value
func (a *SettingAdapter) Upsert(ctx context.Context, setting *entities.AppSetting) error {
	existing, err := a.mapper.Find(ctx, setting.Key)
	if err != nil {
		return err
	}
	if existing != nil {
		return a.mapper.Save(ctx, setting)
	}

	// the table has no created_at, so the insert is stamped here
	record := goqu.Record(setting.Values())
	record["setting_key"] = setting.Key
	record["updated_at"] = utils.Now()
	_, err = a.exec.Insert(ctx, setting.TableName(), record)
	return err
}

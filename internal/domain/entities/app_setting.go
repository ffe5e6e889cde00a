package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Setting value types
const (
	SettingTypeInt    = "int"
	SettingTypeFloat  = "float"
	SettingTypeBool   = "bool"
	SettingTypeString = "string"
)

var truthy = map[string]bool{"true": true, "yes": true, "1": true, "on": true}

// AppSetting is a typed key/value stored as text
type AppSetting struct {
	Key         string  `json:"key" db:"setting_key"`
	Value       string  `json:"value" db:"setting_value"`
	Type        string  `json:"type" db:"setting_type"`
	Description *string `json:"description,omitempty" db:"description"`
	UpdatedAt   *string `json:"updated_at,omitempty" db:"updated_at"`
}

// NewAppSetting stores value as text. The type tag is inferred from the
// runtime type of value unless settingType is given.
func NewAppSetting(key string, value interface{}, settingType string) *AppSetting {
	if settingType == "" {
		settingType = InferSettingType(value)
	}
	return &AppSetting{Key: key, Value: formatSettingValue(value), Type: settingType}
}

// InferSettingType maps a Go value to its type tag
func InferSettingType(value interface{}) string {
	switch value.(type) {
	case bool:
		return SettingTypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return SettingTypeInt
	case float32, float64:
		return SettingTypeFloat
	default:
		return SettingTypeString
	}
}

func formatSettingValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Typed coerces the stored text according to the type tag
func (s *AppSetting) Typed() (interface{}, error) {
	switch s.Type {
	case SettingTypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(s.Value))
		if err != nil {
			return nil, fmt.Errorf("setting %s: %q is not an int", s.Key, s.Value)
		}
		return n, nil
	case SettingTypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %q is not a float", s.Key, s.Value)
		}
		return f, nil
	case SettingTypeBool:
		return truthy[strings.ToLower(strings.TrimSpace(s.Value))], nil
	default:
		return s.Value, nil
	}
}

func (s *AppSetting) TableName() string     { return "app_settings" }
func (s *AppSetting) PrimaryKey() string    { return "setting_key" }
func (s *AppSetting) KeyValue() interface{} { return s.Key }
func (s *AppSetting) HasKey() bool          { return s.Key != "" }

func (s *AppSetting) Values() map[string]interface{} {
	return map[string]interface{}{
		"setting_value": s.Value,
		"setting_type":  s.Type,
		"description":   optValue(s.Description),
	}
}

func (s *AppSetting) Columns() []string {
	return []string{"setting_key", "setting_value", "setting_type", "description", "updated_at"}
}

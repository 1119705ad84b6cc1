package constants

import (
	"database/sql/driver"
	"fmt"
)

// UserStatus status akun di direktori user.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusArchived UserStatus = "archived"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusInactive, UserStatusArchived:
		return true
	}
	return false
}

func (s UserStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("status user tidak dikenal: %q", string(s))
	}
	return string(s), nil
}

func (s *UserStatus) Scan(value interface{}) error {
	v, err := scanEnumString(value)
	if err != nil {
		return err
	}
	if !UserStatus(v).Valid() {
		return fmt.Errorf("status user tidak dikenal: %q", v)
	}
	*s = UserStatus(v)
	return nil
}

// ProgressStatus siklus hidup progress record: pending → completed (atau dihapus saat reject).
type ProgressStatus string

const (
	ProgressPending   ProgressStatus = "pending"
	ProgressCompleted ProgressStatus = "completed"
)

func (s ProgressStatus) Valid() bool {
	return s == ProgressPending || s == ProgressCompleted
}

func (s ProgressStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("status progress tidak dikenal: %q", string(s))
	}
	return string(s), nil
}

func (s *ProgressStatus) Scan(value interface{}) error {
	v, err := scanEnumString(value)
	if err != nil {
		return err
	}
	if !ProgressStatus(v).Valid() {
		return fmt.Errorf("status progress tidak dikenal: %q", v)
	}
	*s = ProgressStatus(v)
	return nil
}

func scanEnumString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("enum: tipe %T tidak didukung", value)
	}
}

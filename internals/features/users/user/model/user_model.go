package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
)

// UserModel merepresentasikan tabel users. Lifecycle akun (undangan, login)
// dikelola di luar modul progress; di sini cukup id + role + status.
type UserModel struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string               `gorm:"size:100;not null" json:"user_name" validate:"required,min=2,max=100"`
	Email     string               `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Role      constants.Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Status    constants.UserStatus `gorm:"type:varchar(20);not null" json:"status"`
	IsActive  bool                 `gorm:"not null" json:"is_active"`
	CreatedAt time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate isi default yang tidak bisa diserahkan ke DB (id, status).
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = constants.UserStatusActive
	}
	return nil
}

func (u UserModel) IsPlayer() bool { return u.Role == constants.RolePlayer }

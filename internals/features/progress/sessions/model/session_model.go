package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel sesi latihan bertanggal tempat coach menilai pemain.
type SessionModel struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Date       time.Time `gorm:"column:date;type:date;not null;index:idx_sessions_date" json:"date"`
	FocusAreas *string   `gorm:"column:focus_areas;type:text" json:"focus_areas,omitempty"`
	CreatedBy  uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// SessionCriterionModel pivot sesi ↔ criteria.
// IsFocus=false untuk criteria tambahan (non-focus) yang dinilai ad hoc.
type SessionCriterionModel struct {
	SessionID   uint      `gorm:"column:session_id;primaryKey" json:"session_id"`
	CriterionID uint      `gorm:"column:criterion_id;primaryKey;index:idx_session_criteria_criterion" json:"criterion_id"`
	IsFocus     bool      `gorm:"column:is_focus;not null" json:"is_focus"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SessionCriterionModel) TableName() string {
	return "session_criteria"
}

// SessionAttendanceModel pemain yang hadir di sesi.
type SessionAttendanceModel struct {
	SessionID uint      `gorm:"column:session_id;primaryKey" json:"session_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;index:idx_session_attendances_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SessionAttendanceModel) TableName() string {
	return "session_attendances"
}

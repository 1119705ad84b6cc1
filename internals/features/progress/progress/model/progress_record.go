package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
)

// ProgressRecordModel fakta "pemain X sudah menunjukkan criteria Y".
// Satu pemain maksimal satu record per criteria (uniq_progress_user_criteria).
type ProgressRecordModel struct {
	ID         uint                     `gorm:"column:id;primaryKey" json:"id"`
	UserID     uuid.UUID                `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_progress_user_criteria,priority:1" json:"user_id"`
	CriteriaID uint                     `gorm:"column:criteria_id;not null;uniqueIndex:uniq_progress_user_criteria,priority:2;index:idx_progress_criteria" json:"criteria_id"`
	Status     constants.ProgressStatus `gorm:"column:status;type:varchar(20);not null;index:idx_progress_status" json:"status"`
	AssessedBy uuid.UUID                `gorm:"column:assessed_by;type:uuid;not null" json:"assessed_by"`
	ApprovedBy *uuid.UUID               `gorm:"column:approved_by;type:uuid" json:"approved_by,omitempty"`
	SessionID  uint                     `gorm:"column:session_id;not null;index:idx_progress_session" json:"session_id"`
	AssessedAt time.Time                `gorm:"column:assessed_at;not null" json:"assessed_at"`
	ApprovedAt *time.Time               `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProgressRecordModel) TableName() string {
	return "progress_records"
}

package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RankProgress progres satu rank. Percentage dibulatkan tanpa desimal.
type RankProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// CategoryProgress progres satu kategori + rank kategori saat ini.
type CategoryProgress struct {
	RankName   string `json:"rank_name"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// PlayerProgressSummaryModel cache turunan per pemain. Selalu bisa dibangun ulang
// dari progress_records + rubric; ditulis utuh (tidak pernah di-patch sebagian).
// Tanpa timestamp: dua rebuild tanpa mutasi menghasilkan baris yang identik.
type PlayerProgressSummaryModel struct {
	UserID            uuid.UUID                                       `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	CurrentRankID     *uint                                           `gorm:"column:current_rank_id" json:"current_rank_id,omitempty"`
	OverallPercentage float64                                         `gorm:"column:overall_percentage;type:decimal(5,2);not null" json:"overall_percentage"`
	OverallCompleted  int                                             `gorm:"column:overall_completed;not null" json:"overall_completed"`
	OverallTotal      int                                             `gorm:"column:overall_total;not null" json:"overall_total"`
	RankProgress      datatypes.JSONType[map[string]RankProgress]     `gorm:"column:rank_progress;not null" json:"rank_progress"`
	CategoryProgress  datatypes.JSONType[map[string]CategoryProgress] `gorm:"column:category_progress;not null" json:"category_progress"`
}

func (PlayerProgressSummaryModel) TableName() string {
	return "player_progress_summaries"
}

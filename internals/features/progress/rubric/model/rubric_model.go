package model

import (
	"time"
)

// RankModel tingkatan progres (Bronze < Silver < ...). Urutan ditentukan oleh Level.
type RankModel struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Level     int       `gorm:"column:level;uniqueIndex:uniq_ranks_level;not null" json:"level"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RankModel) TableName() string {
	return "ranks"
}

// CategoryModel domain skill (Hitting, Blocking, ...), ortogonal terhadap rank.
type CategoryModel struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex:uniq_categories_name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// CriterionModel satu pernyataan skill, milik tepat satu rank dan satu kategori.
// Tidak ada jalur update setelah rubric disetup.
type CriterionModel struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;type:text;not null" json:"name"`
	RankID     uint      `gorm:"column:rank_id;not null;index:idx_criteria_rank" json:"rank_id"`
	CategoryID uint      `gorm:"column:category_id;not null;index:idx_criteria_category" json:"category_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Rank     *RankModel     `gorm:"foreignKey:RankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"rank,omitempty"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
}

func (CriterionModel) TableName() string {
	return "criteria"
}

package dto

import (
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
)

type CreateRankRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Level int    `json:"level" validate:"required,gt=0"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateCriterionRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	RankID     uint   `json:"rank_id" validate:"required,gt=0"`
	CategoryID uint   `json:"category_id" validate:"required,gt=0"`
}

// Batch wrapper supaya body array bisa divalidasi per item (items[i].field).
type Batch[T any] struct {
	Items []T `validate:"required,min=1,dive"`
}

func (r CreateRankRequest) ToModel() model.RankModel {
	return model.RankModel{Name: r.Name, Level: r.Level}
}

func (r CreateCategoryRequest) ToModel() model.CategoryModel {
	return model.CategoryModel{Name: r.Name}
}

func (r CreateCriterionRequest) ToModel() model.CriterionModel {
	return model.CriterionModel{Name: r.Name, RankID: r.RankID, CategoryID: r.CategoryID}
}

// RubricResponse seluruh rubric: rank (urut level), kategori, criteria.
type RubricResponse struct {
	Ranks      []model.RankModel      `json:"ranks"`
	Categories []model.CategoryModel  `json:"categories"`
	Criteria   []model.CriterionModel `json:"criteria"`
}

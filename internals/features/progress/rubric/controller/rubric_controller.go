package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/dto"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

type RubricController struct {
	Store *service.Store
}

func NewRubricController(db *gorm.DB) *RubricController {
	return &RubricController{Store: service.NewStore(db)}
}

// 🟢 GET /api/u/rubric?rank_id=&category_id=
// Rank urut level, kategori, dan criteria (bisa difilter).
func (ctrl *RubricController) Get(c *fiber.Ctx) error {
	var f service.CriteriaFilter
	if v := c.Query("rank_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "rank_id tidak valid")
		}
		rid := uint(id)
		f.RankID = &rid
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
		}
		cid := uint(id)
		f.CategoryID = &cid
	}

	ctx := c.UserContext()
	ranks, err := ctrl.Store.ListRanks(ctx, nil)
	if err != nil {
		return helper.RespondError(c, err)
	}
	cats, err := ctrl.Store.ListCategories(ctx, nil)
	if err != nil {
		return helper.RespondError(c, err)
	}
	criteria, err := ctrl.Store.ListCriteria(ctx, nil, f)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonOK(c, "Rubric", dto.RubricResponse{Ranks: ranks, Categories: cats, Criteria: criteria})
}

// 🟡 POST /api/a/rubric/ranks
// Body array: [{ "name": "Bronze", "level": 1 }, ...]
func (ctrl *RubricController) CreateRanks(c *fiber.Ctx) error {
	items, err := parseBatch[dto.CreateRankRequest](c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	rows := make([]model.RankModel, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.ToModel())
	}
	if err := ctrl.Store.CreateRanks(c.UserContext(), rows); err != nil {
		return respondCreateError(c, err)
	}
	return helper.JsonCreated(c, "Rank berhasil ditambahkan", rows)
}

// 🟡 POST /api/a/rubric/categories
func (ctrl *RubricController) CreateCategories(c *fiber.Ctx) error {
	items, err := parseBatch[dto.CreateCategoryRequest](c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	rows := make([]model.CategoryModel, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.ToModel())
	}
	if err := ctrl.Store.CreateCategories(c.UserContext(), rows); err != nil {
		return respondCreateError(c, err)
	}
	return helper.JsonCreated(c, "Kategori berhasil ditambahkan", rows)
}

// 🟡 POST /api/a/rubric/criteria
// rank_id dan category_id harus sudah ada.
func (ctrl *RubricController) CreateCriteria(c *fiber.Ctx) error {
	items, err := parseBatch[dto.CreateCriterionRequest](c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	rows := make([]model.CriterionModel, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.ToModel())
	}
	if err := ctrl.Store.CreateCriteria(c.UserContext(), rows); err != nil {
		return respondCreateError(c, err)
	}
	return helper.JsonCreated(c, "Criteria berhasil ditambahkan", rows)
}

func parseBatch[T any](c *fiber.Ctx) ([]T, error) {
	var items []T
	if err := c.BodyParser(&items); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format data tidak valid, kirim array JSON")
	}
	if ve := helper.ValidateStruct(dto.Batch[T]{Items: items}); ve != nil {
		return nil, ve
	}
	return items, nil
}

func respondCreateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRankNotFound), errors.Is(err, service.ErrCategoryNotFound):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return helper.JsonError(c, fiber.StatusConflict, "Data sudah ada (nama / level duplikat)")
	}
	return helper.RespondError(c, err)
}

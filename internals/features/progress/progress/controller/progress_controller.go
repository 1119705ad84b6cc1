package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/service"
	summaryService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

type PlayerProgressController struct {
	Store *service.Store
}

func NewPlayerProgressController(db *gorm.DB) *PlayerProgressController {
	return &PlayerProgressController{Store: service.NewStore(db, summaryService.NewAggregator(db))}
}

// GET /api/u/progress/me
// Riwayat progress milik user login (pending + completed).
func (ctrl *PlayerProgressController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.RespondError(c, err)
	}

	rows, err := ctrl.Store.ListForPlayer(c.UserContext(), userID)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonOK(c, "Riwayat progress", rows)
}

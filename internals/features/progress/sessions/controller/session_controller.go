package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

type SessionController struct {
	Service *service.Service
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{Service: service.NewService(db)}
}

// 🟢 GET /api/c/sessions?page=&per_page=
// Sesi terbaru dulu, lengkap dengan jumlah criteria, hadir, dan pending.
func (ctrl *SessionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctrl.Service.List(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonList(c, "Daftar sesi", rows, p, total)
}

// 🟢 GET /api/c/sessions/:id
func (ctrl *SessionController) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	detail, err := ctrl.Service.Detail(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.RespondError(c, err)
	}
	return helper.JsonOK(c, "Detail sesi", detail)
}

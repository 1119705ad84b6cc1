package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/assessments/dto"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/assessments/service"
	sessionService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

type AssessmentController struct {
	Service *service.Service
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	return &AssessmentController{Service: service.NewService(db)}
}

// 🟡 POST /api/c/assessments
// Submit hasil penilaian satu sesi. Pasangan (pemain, criteria) yang sudah punya record dilewati.
func (ctrl *AssessmentController) Submit(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.RespondError(c, err)
	}

	var req dto.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format data tidak valid")
	}

	res, err := ctrl.Service.Submit(c.UserContext(), actor, req)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonCreated(c, "Penilaian berhasil disimpan", res)
}

// 🟢 POST /api/c/assessments/review
// Preview state Reviewing: capaian per pemain, per criteria, dan warning. Tidak menulis apa pun.
func (ctrl *AssessmentController) Review(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.RespondError(c, err)
	}

	var req dto.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format data tidak valid")
	}

	review, err := ctrl.Service.Review(c.UserContext(), actor, req)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonOK(c, "Review penilaian", review)
}

// 🟢 GET /api/c/sessions/:id/assessment-sheet
func (ctrl *AssessmentController) Sheet(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	sheet, err := ctrl.Service.Sheet(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.RespondError(c, err)
	}
	return helper.JsonOK(c, "Assessment sheet", sheet)
}

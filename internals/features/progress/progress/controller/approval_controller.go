package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/dto"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/service"
	summaryService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

type ApprovalController struct {
	Store *service.Store
}

func NewApprovalController(db *gorm.DB) *ApprovalController {
	return &ApprovalController{Store: service.NewStore(db, summaryService.NewAggregator(db))}
}

// 🟢 GET /api/a/approvals/pending
func (ctrl *ApprovalController) ListPending(c *fiber.Ctx) error {
	groups, err := ctrl.Store.ListPending(c.UserContext())
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonOK(c, "Daftar progress pending", groups)
}

// 🟡 POST /api/a/approvals/approve
// Body: { "ids": [..] }. Id yang tidak pending diabaikan.
func (ctrl *ApprovalController) Approve(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	req, err := parseIDs(c)
	if err != nil {
		return helper.RespondError(c, err)
	}

	res, err := ctrl.Store.Approve(c.UserContext(), actor.ID, req.IDs)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonBatch(c, "Progress berhasil di-approve", res.Ignored, res)
}

// 🔴 POST /api/a/approvals/reject
// Record pending dihapus permanen.
func (ctrl *ApprovalController) Reject(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	req, err := parseIDs(c)
	if err != nil {
		return helper.RespondError(c, err)
	}

	res, err := ctrl.Store.Reject(c.UserContext(), actor.ID, req.IDs)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonBatch(c, "Progress berhasil di-reject", res.Ignored, res)
}

func parseIDs(c *fiber.Ctx) (dto.ProgressIDsRequest, error) {
	var req dto.ProgressIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Format data tidak valid")
	}
	if ve := helper.ValidateStruct(req); ve != nil {
		return req, ve
	}
	return req, nil
}

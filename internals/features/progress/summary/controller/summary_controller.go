package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	rubricService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/service"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	userService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SummaryController struct {
	Aggregator *service.Aggregator
}

func NewSummaryController(db *gorm.DB) *SummaryController {
	return &SummaryController{Aggregator: service.NewAggregator(db)}
}

// 🟢 GET /api/u/summaries/me
func (ctrl *SummaryController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return ctrl.respondSummary(c, userID)
}

// 🟢 GET /api/u/summaries/:user_id
// Staff boleh lihat semua pemain; pemain hanya miliknya sendiri.
func (ctrl *SummaryController) GetByUserID(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.RespondError(c, err)
	}
	target, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}
	if target != actor.ID && !constants.HasRole(actor.Role, constants.StaffRoles) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("melihat summary pemain lain"))
	}
	return ctrl.respondSummary(c, target)
}

// 🟢 GET /api/u/summaries?page=&per_page=
// Urut overall_percentage tertinggi dulu.
func (ctrl *SummaryController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	rows, total, err := ctrl.Aggregator.List(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return helper.RespondError(c, err)
	}
	return helper.JsonList(c, "Daftar summary pemain", rows, p, total)
}

// 🟡 POST /api/a/summaries/:user_id/recompute
func (ctrl *SummaryController) Recompute(c *fiber.Ctx) error {
	target, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	summary, err := ctrl.Aggregator.RecomputeForPlayer(c.UserContext(), nil, target)
	if err != nil {
		return respondAggregateError(c, err)
	}
	return helper.JsonOK(c, "Summary berhasil dihitung ulang", summary)
}

// 🟡 POST /api/a/summaries/rebuild
// Rebuild semua pemain; kegagalan per pemain dilaporkan, bukan menghentikan batch.
func (ctrl *SummaryController) Rebuild(c *fiber.Ctx) error {
	report, err := ctrl.Aggregator.RebuildAll(c.UserContext())
	if err != nil {
		return respondAggregateError(c, err)
	}
	msg := "Rebuild summary selesai"
	if !report.OK() {
		msg = fmt.Sprintf("Rebuild summary selesai dengan %d kegagalan", len(report.Failed))
	}
	return helper.JsonOK(c, msg, report)
}

// 🟢 GET /api/a/summaries/export
func (ctrl *SummaryController) Export(c *fiber.Ctx) error {
	buf, err := ctrl.Aggregator.ExportXLSX(c.UserContext())
	if err != nil {
		return helper.RespondError(c, err)
	}
	name := fmt.Sprintf("player-progress-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}

func (ctrl *SummaryController) respondSummary(c *fiber.Ctx, playerID uuid.UUID) error {
	summary, err := ctrl.Aggregator.GetOrCompute(c.UserContext(), playerID)
	if err != nil {
		return respondAggregateError(c, err)
	}
	return helper.JsonOK(c, "Summary progress pemain", summary)
}

func respondAggregateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, userService.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, rubricService.ErrRubricNotConfigured):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	return helper.RespondError(c, err)
}

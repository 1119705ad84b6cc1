package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/controller"
	"github.com/jgretton/junior-development-programme-sub000/internals/middlewares"
	authMiddleware "github.com/jgretton/junior-development-programme-sub000/internals/middlewares/auth"
)

// SummaryUserRoutes dipasang di grup /api/u.
func SummaryUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSummaryController(db)

	summaries := router.Group("/summaries")
	summaries.Get("/me", ctrl.Me)
	summaries.Get("/", authMiddleware.OnlyRolesSlice(
		constants.RoleErrorStaff("melihat daftar summary"),
		constants.StaffRoles,
	), ctrl.List)
	summaries.Get("/:user_id", ctrl.GetByUserID)
}

// SummaryAdminRoutes dipasang di grup /api/a.
func SummaryAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSummaryController(db)

	summaries := router.Group("/summaries")
	summaries.Post("/rebuild", middlewares.RebuildRateLimiter(), ctrl.Rebuild)
	summaries.Get("/export", ctrl.Export)
	summaries.Post("/:user_id/recompute", ctrl.Recompute)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/controller"
)

// ApprovalAdminRoutes dipasang di grup /api/a.
func ApprovalAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewApprovalController(db)

	approvals := router.Group("/approvals")
	approvals.Get("/pending", ctrl.ListPending)
	approvals.Post("/approve", ctrl.Approve)
	approvals.Post("/reject", ctrl.Reject)
}

// PlayerProgressRoutes dipasang di grup /api/u.
func PlayerProgressRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPlayerProgressController(db)

	router.Get("/progress/me", ctrl.Mine)
}

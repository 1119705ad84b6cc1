package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/assessments/controller"
)

// AssessmentCoachRoutes dipasang di grup /api/c (coach & admin).
func AssessmentCoachRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAssessmentController(db)

	assessments := router.Group("/assessments")
	assessments.Post("/", ctrl.Submit)
	assessments.Post("/review", ctrl.Review)

	router.Get("/sessions/:id/assessment-sheet", ctrl.Sheet)
}

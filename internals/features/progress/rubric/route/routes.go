package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/controller"
)

// RubricUserRoutes read-only, grup /api/u.
func RubricUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRubricController(db)
	router.Get("/rubric", ctrl.Get)
}

// RubricAdminRoutes setup rubric (batch create), grup /api/a.
func RubricAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRubricController(db)

	rubric := router.Group("/rubric")
	rubric.Post("/ranks", ctrl.CreateRanks)
	rubric.Post("/categories", ctrl.CreateCategories)
	rubric.Post("/criteria", ctrl.CreateCriteria)
}

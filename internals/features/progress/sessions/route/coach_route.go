package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/controller"
)

func SessionCoachRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSessionController(db)

	sessions := router.Group("/sessions")
	sessions.Get("/", ctrl.List)
	sessions.Get("/:id", ctrl.GetByID)
}

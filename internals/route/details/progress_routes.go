package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assessmentRoute "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/assessments/route"
	progressRoute "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/route"
	rubricRoute "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/route"
	sessionRoute "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/route"
	summaryRoute "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/route"
)

// ProgressUserRoutes /api/u: semua user login.
func ProgressUserRoutes(r fiber.Router, db *gorm.DB) {
	rubricRoute.RubricUserRoutes(r, db)
	summaryRoute.SummaryUserRoutes(r, db)
	progressRoute.PlayerProgressRoutes(r, db)
}

// ProgressCoachRoutes /api/c: coach & admin.
func ProgressCoachRoutes(r fiber.Router, db *gorm.DB) {
	sessionRoute.SessionCoachRoutes(r, db)
	assessmentRoute.AssessmentCoachRoutes(r, db)
}

// ProgressAdminRoutes /api/a: admin saja.
func ProgressAdminRoutes(r fiber.Router, db *gorm.DB) {
	rubricRoute.RubricAdminRoutes(r, db)
	progressRoute.ApprovalAdminRoutes(r, db)
	summaryRoute.SummaryAdminRoutes(r, db)
}

// file: internals/routes/setup.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	authMiddleware "github.com/jgretton/junior-development-programme-sub000/internals/middlewares/auth"
	routeDetails "github.com/jgretton/junior-development-programme-sub000/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes (health, metrics)...")
	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PRIVATE (USER) → semua role yang login
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// COACH → coach & admin
	log.Println("[INFO] Setting up COACH group...")
	coach := app.Group("/api/c",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorCoach("penilaian sesi"), constants.CoachAndAbove),
	)

	// ADMIN → admin saja
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("administrasi progress"), constants.RoleAdmin),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Progress routes...")
	routeDetails.ProgressUserRoutes(private, db)
	routeDetails.ProgressCoachRoutes(coach, db)
	routeDetails.ProgressAdminRoutes(admin, db)
}

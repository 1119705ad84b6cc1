package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jgretton/junior-development-programme-sub000/internals/middlewares/logger"
)

// SetupMiddlewares urutan: recover → request id → log → metrics → CORS → limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(requestid.New())
	app.Use(logger.LoggerMiddleware())
	app.Use(MetricsMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}

package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jgretton/junior-development-programme-sub000/internals/metrics"
)

// MetricsMiddleware catat jumlah & durasi request per route pattern (bukan path mentah).
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.RecordHTTP(route, c.Method(), strconv.Itoa(status), time.Since(start))
		return err
	}
}

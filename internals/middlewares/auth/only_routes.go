package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

// OnlyRolesSlice memungkinkan akses jika user memiliki salah satu dari role yang diizinkan.
func OnlyRolesSlice(message string, allowedRoles []constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := c.Locals("userRole").(string)
		if !ok || raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Role not found")
		}
		role, err := constants.ParseRole(raw)
		if err != nil || !constants.HasRole(role, allowedRoles) {
			return helper.JsonError(c, fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

// OnlyRoles shortcut variadic.
func OnlyRoles(message string, roles ...constants.Role) fiber.Handler {
	return OnlyRolesSlice(message, roles)
}

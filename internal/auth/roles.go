package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

// RequireAuthenticated ensures a caller is logged in.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("login required")
		}
		return c.Next()
	}
}

// RequireStudent ensures the caller is a student account.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if !principal.User.IsStudent() {
			return apperrors.NewForbidden("complaint.access_denied", "student account required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller is an admin account.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if !principal.User.IsAdmin() {
			return apperrors.NewForbidden("admin.access_denied", "admin account required")
		}
		return c.Next()
	}
}

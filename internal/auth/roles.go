package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// Authorize checks the caller against the roles permitted for an operation.
func Authorize(identity *domain.Identity, allowed ...domain.Role) error {
	if identity == nil {
		return apperrors.NewUnauthenticated("Not authenticated")
	}
	switch identity.Role {
	case domain.RolePublisher, domain.RoleApplicant, domain.RoleApprover:
	default:
		return apperrors.NewForbidden("Insufficient permissions")
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("Insufficient permissions")
}

// RequireRole ensures the authenticated caller holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := Authorize(identity, allowed...); err != nil {
			return err
		}
		return c.Next()
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/job-tracker/internal/api/dto"
	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/domain"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// bindJSON parses the request body into out and validates it.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	return dto.Validate(out)
}

// pathID returns the named path parameter when it is a well-formed id.
func pathID(c *fiber.Ctx, name string) (string, bool) {
	raw := c.Params(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

func currentIdentity(c *fiber.Ctx) (*domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("Not authenticated")
	}
	return identity, nil
}

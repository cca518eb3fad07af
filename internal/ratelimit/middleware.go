package ratelimit

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// Middleware rejects requests from clients that exhausted their allowance.
func Middleware(limiter Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		if !limiter.Allow(c.UserContext(), c.IP()) {
			return apperrors.NewRateLimited("Too many requests, try again later")
		}
		return c.Next()
	}
}

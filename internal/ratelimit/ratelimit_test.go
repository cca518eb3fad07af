package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

func TestLocalLimiterExhaustsPerKey(t *testing.T) {
	limiter := NewLocalLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "10.0.0.1"), "request %d", i)
	}
	assert.False(t, limiter.Allow(ctx, "10.0.0.1"))
	assert.True(t, limiter.Allow(ctx, "10.0.0.2"))
}

func TestNewRedisLimiterWithoutClientUsesFallback(t *testing.T) {
	fallback := NewLocalLimiter(1, time.Hour)
	limiter := NewRedisLimiter(nil, "rl:", 1, time.Hour, fallback, zap.NewNop())

	assert.Same(t, fallback, limiter)
}

func TestMiddlewareReturnsRateLimited(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
	app.Post("/login", Middleware(NewLocalLimiter(2, time.Hour)), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

func TestLocalLimiterPruneDropsIdleKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLocalLimiter(1, time.Hour)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow(context.Background(), "old"))
	now = now.Add(30 * time.Minute)
	assert.True(t, limiter.Allow(context.Background(), "fresh"))

	assert.Equal(t, 1, limiter.Prune(10*time.Minute))
	assert.Equal(t, 1, limiter.Len())

	// A pruned key starts over with a full bucket.
	assert.True(t, limiter.Allow(context.Background(), "old"))
	assert.False(t, limiter.Allow(context.Background(), "fresh"))
}

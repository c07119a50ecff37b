package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupLoginApp(t *testing.T, cache *redis.Client, maxPerMin int) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/login", LoginRateLimit(cache, maxPerMin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginRateLimitBlocksAfterBudget(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := setupLoginApp(t, cache, 3)

	for i := 0; i < 3; i++ {
		if status := postLogin(t, app, `{"phone":"+11234567890"}`); status != fiber.StatusOK {
			t.Fatalf("attempt %d: expected %d got %d", i+1, fiber.StatusOK, status)
		}
	}
	if status := postLogin(t, app, `{"phone":"+11234567890"}`); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected %d got %d", fiber.StatusTooManyRequests, status)
	}

	// A different phone has its own budget.
	if status := postLogin(t, app, `{"phone":"+19876543210"}`); status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}
}

func TestLoginRateLimitNoRedisFailsOpen(t *testing.T) {
	app := setupLoginApp(t, nil, 1)

	for i := 0; i < 5; i++ {
		if status := postLogin(t, app, `{"phone":"+11234567890"}`); status != fiber.StatusOK {
			t.Fatalf("attempt %d: expected %d got %d", i+1, fiber.StatusOK, status)
		}
	}
}

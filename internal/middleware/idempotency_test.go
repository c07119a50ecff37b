package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shifa-care/shifa_api/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	logger := logging.Discard()

	var hits int64
	app.Use(Idempotency(cache, time.Minute, logger))
	app.Post("/appointments", func(c *fiber.Ctx) error {
		atomic.AddInt64(&hits, 1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booked": true})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, &hits, cleanup
}

func TestIdempotencyPassesThroughWithoutHeader(t *testing.T) {
	app, hits, cleanup := setupTestApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/appointments", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected %d got %d", fiber.StatusCreated, resp.StatusCode)
		}
	}

	if got := atomic.LoadInt64(hits); got != 2 {
		t.Fatalf("expected handler to run twice, ran %d times", got)
	}
}

func TestIdempotencyReturnsCachedResponse(t *testing.T) {
	app, hits, cleanup := setupTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/appointments", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(idempotencyKeyHeader, "booking-abc123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected status %d got %d", fiber.StatusCreated, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	// A retry with the same key must replay the stored response without
	// reaching the handler again.
	req2 := httptest.NewRequest(fiber.MethodPost, "/appointments", strings.NewReader("{}"))
	req2.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req2.Header.Set(idempotencyKeyHeader, "booking-abc123")

	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("second request: %v", err)
	}

	if resp2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected cached status %d got %d", fiber.StatusCreated, resp2.StatusCode)
	}

	cachedPayload, err := io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatalf("read cached body: %v", err)
	}
	resp2.Body.Close()

	if string(cachedPayload) != string(payload) {
		t.Fatalf("expected cached payload %s got %s", string(payload), string(cachedPayload))
	}

	if got := atomic.LoadInt64(hits); got != 1 {
		t.Fatalf("expected handler to run once, ran %d times", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal(cachedPayload, &decoded); err != nil {
		t.Fatalf("cached payload invalid json: %v", err)
	}
}

package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupLoginApp(t *testing.T, maxPerMin int) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Post("/login", LoginRateLimit(cache, maxPerMin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, cleanup
}

func loginAttempt(t *testing.T, app *fiber.App, email string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(`{"email":"`+email+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginRateLimitBlocksAfterThreshold(t *testing.T) {
	app, cleanup := setupLoginApp(t, 3)
	defer cleanup()

	for i := 0; i < 3; i++ {
		if code := loginAttempt(t, app, "buyer@example.com"); code != fiber.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, code)
		}
	}
	if code := loginAttempt(t, app, "buyer@example.com"); code != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 after threshold, got %d", code)
	}
}

func TestLoginRateLimitIsPerEmail(t *testing.T) {
	app, cleanup := setupLoginApp(t, 1)
	defer cleanup()

	if code := loginAttempt(t, app, "first@example.com"); code != fiber.StatusOK {
		t.Fatalf("expected 200 for first account, got %d", code)
	}
	if code := loginAttempt(t, app, "second@example.com"); code != fiber.StatusOK {
		t.Fatalf("expected 200 for a different account, got %d", code)
	}
	if code := loginAttempt(t, app, "first@example.com"); code != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 for the first account, got %d", code)
	}
}

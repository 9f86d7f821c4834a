package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Validation runs before any user lookup, so these paths need no database.

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp.StatusCode
}

func TestCreateGastoRejectsBadRawText(t *testing.T) {
	app := fiber.New()
	app.Post("/gasto", CreateGasto)

	if code := postJSON(t, app, "/gasto", `{"raw_text":"","google_id":"g"}`); code != fiber.StatusBadRequest {
		t.Errorf("empty raw_text: expected 400, got %d", code)
	}

	long := strings.Repeat("a", 501)
	if code := postJSON(t, app, "/gasto", `{"raw_text":"`+long+`","google_id":"g"}`); code != fiber.StatusBadRequest {
		t.Errorf("over-length raw_text: expected 400, got %d", code)
	}

	if code := postJSON(t, app, "/gasto", `not json`); code != fiber.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", code)
	}
}

func TestSetAuryToneRejectsInvalidTone(t *testing.T) {
	app := fiber.New()
	app.Post("/user/aury-tone", SetAuryTone)

	for _, tone := range []string{"angry", "", "Sarcastic"} {
		code := postJSON(t, app, "/user/aury-tone", `{"google_id":"g","tone":"`+tone+`"}`)
		if code != fiber.StatusBadRequest {
			t.Errorf("tone %q: expected 400, got %d", tone, code)
		}
	}
}

func TestUseFreezeRejectsMalformedBody(t *testing.T) {
	app := fiber.New()
	app.Post("/streak/freeze", UseFreeze)

	if code := postJSON(t, app, "/streak/freeze", `{`); code != fiber.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", code)
	}
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

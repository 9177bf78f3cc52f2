package handler

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
)

func init() {
	middleware.InitLogger("error", "test")
}

func TestRespond_SuccessEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error {
		return respond(c, fiber.StatusOK, fiber.Map{"value": 1}, "Fetched")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var e envelope
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.StatusCode != 200 || e.StatusCode != 200 {
		t.Errorf("status = %d/%d, want 200", resp.StatusCode, e.StatusCode)
	}
	if !e.Success {
		t.Error("success should be true")
	}
	if e.Message != "Fetched" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Data == nil {
		t.Error("data should be set")
	}
}

func TestFail_ErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c fiber.Ctx) error {
		return fail(c, apierr.NotFound("Video not found"))
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return fail(c, errors.New("pq: connection reset"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var e errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != 404 || e.StatusCode != 404 {
		t.Errorf("status = %d/%d, want 404", resp.StatusCode, e.StatusCode)
	}
	if e.Success {
		t.Error("success should be false")
	}
	if e.Message != "Video not found" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Data != nil {
		t.Error("data should be null")
	}
	// A [] decodes to an empty non-nil slice; nil means the field was
	// missing or null.
	if e.Errors == nil || len(e.Errors) != 0 {
		t.Errorf("errors = %#v, want empty array", e.Errors)
	}

	// Untyped errors become a generic 500; the cause never reaches the client.
	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if e.Message != "Something went wrong" {
		t.Errorf("message = %q, internal detail must not leak", e.Message)
	}
}

package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/models"
)

func newSlotApp(providers *fakeProviders, gen *fakeGenerator) *fiber.App {
	app := fiber.New()
	sc := NewSlotController(providers, gen)
	app.Get("/providers/:provider_id/slots", sc.GetSlots)
	return app
}

func TestGetSlots_OK(t *testing.T) {
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	gen := &fakeGenerator{slots: []models.Slot{
		{StartAt: day, EndAt: day.Add(time.Hour), Available: true},
		{StartAt: day.Add(time.Hour), EndAt: day.Add(2 * time.Hour), Available: false},
	}}
	app := newSlotApp(&fakeProviders{providers: map[uint]*models.User{
		7: {ID: 7, Name: "Dr. Lang", Role: models.RoleProvider},
	}}, gen)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/7/slots?granularity=60", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Slots []models.Slot `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(body.Slots))
	}
	if body.Slots[1].Available {
		t.Fatal("second slot should be unavailable")
	}
}

func TestGetSlots_UnknownProvider(t *testing.T) {
	app := newSlotApp(&fakeProviders{providers: map[uint]*models.User{}}, &fakeGenerator{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/99/slots", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetSlots_BadProviderID(t *testing.T) {
	app := newSlotApp(&fakeProviders{}, &fakeGenerator{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/abc/slots", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetSlots_BadGranularity(t *testing.T) {
	app := newSlotApp(&fakeProviders{providers: map[uint]*models.User{
		7: {ID: 7, Role: models.RoleProvider},
	}}, &fakeGenerator{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/7/slots?granularity=45", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetSlots_InvertedRange(t *testing.T) {
	app := newSlotApp(&fakeProviders{providers: map[uint]*models.User{
		7: {ID: 7, Role: models.RoleProvider},
	}}, &fakeGenerator{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/providers/7/slots?from=2026-03-09T00:00:00Z&to=2026-03-02T00:00:00Z", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetSlots_EmptyCalendarIsAnArray(t *testing.T) {
	app := newSlotApp(&fakeProviders{providers: map[uint]*models.User{
		7: {ID: 7, Role: models.RoleProvider},
	}}, &fakeGenerator{slots: nil})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/7/slots", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(body["slots"]) != "[]" {
		t.Fatalf("slots = %s, want []", body["slots"])
	}
}

package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotworks/booking-app/models"
)

func newExceptionApp(admin *fakeExceptionAdmin, actorID uint, role string) *fiber.App {
	app := fiber.New()
	ec := NewExceptionController(admin)
	group := app.Group("/exceptions", asActor(actorID, role))
	group.Get("/", ec.ListExceptions)
	group.Post("/", ec.CreateException)
	group.Delete("/:id", ec.DeleteException)
	return app
}

func TestCreateException_OK(t *testing.T) {
	admin := &fakeExceptionAdmin{}
	app := newExceptionApp(admin, 1, models.RoleProvider)

	resp := postJSON(t, app, "/exceptions", map[string]any{
		"start_at": "2026-03-02T00:00:00Z",
		"end_at":   "2026-03-03T00:00:00Z",
		"reason":   "public holiday",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if len(admin.windows) != 1 || admin.windows[0].ProviderID != 1 {
		t.Fatalf("window not stored for the authenticated provider: %+v", admin.windows)
	}
}

func TestCreateException_OverCommittedBooking(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	admin := &fakeExceptionAdmin{bookings: []models.Booking{{
		ProviderID: 1, ClientID: 2, Status: models.StatusConfirmed,
		StartAt: day.Add(10 * time.Hour), EndAt: day.Add(11 * time.Hour),
	}}}
	app := newExceptionApp(admin, 1, models.RoleProvider)

	resp := postJSON(t, app, "/exceptions", map[string]any{
		"start_at": "2026-03-02T00:00:00Z",
		"end_at":   "2026-03-03T00:00:00Z",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "committed bookings exist inside the window; cancel them first" {
		t.Fatalf("message = %q, want the cancel-first reason", body.Message)
	}
	if len(admin.windows) != 0 {
		t.Fatal("window must not be stored over committed bookings")
	}
}

func TestCreateException_OverlapsExistingWindow(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	admin := &fakeExceptionAdmin{windows: []models.ExceptionWindow{{
		Model: gorm.Model{ID: 1}, ProviderID: 1, StartAt: day, EndAt: day.AddDate(0, 0, 1),
	}}}
	app := newExceptionApp(admin, 1, models.RoleProvider)

	resp := postJSON(t, app, "/exceptions", map[string]any{
		"start_at": "2026-03-02T12:00:00Z",
		"end_at":   "2026-03-04T00:00:00Z",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "the window overlaps an existing exception window" {
		t.Fatalf("message = %q, want the overlap reason", body.Message)
	}
}

func TestCreateException_BadTimes(t *testing.T) {
	app := newExceptionApp(&fakeExceptionAdmin{}, 1, models.RoleProvider)

	resp := postJSON(t, app, "/exceptions", map[string]any{
		"start_at": "next monday",
		"end_at":   "2026-03-03T00:00:00Z",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateException_ClientsForbidden(t *testing.T) {
	app := newExceptionApp(&fakeExceptionAdmin{}, 2, models.RoleClient)

	resp := postJSON(t, app, "/exceptions", map[string]any{
		"start_at": "2026-03-02T00:00:00Z",
		"end_at":   "2026-03-03T00:00:00Z",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestDeleteException_OtherProvidersWindow(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	admin := &fakeExceptionAdmin{windows: []models.ExceptionWindow{{
		Model: gorm.Model{ID: 1}, ProviderID: 7, StartAt: day, EndAt: day.AddDate(0, 0, 1),
	}}}
	app := newExceptionApp(admin, 1, models.RoleProvider)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/exceptions/1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if len(admin.windows) != 1 {
		t.Fatal("another provider's window must survive the delete attempt")
	}
}

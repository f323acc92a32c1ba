package refdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(newMockRepo()), NewService(newMockRepo()))
	e := echo.New()
	return h, e
}

func TestHandler_CreateActivityType(t *testing.T) {
	h, e := newTestHandler()
	body := `{"name":"Running"}`
	req := httptest.NewRequest(http.MethodPost, "/activity_types", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.activityTypes.create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetActivityType_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/activity_types/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.activityTypes.get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
	if he.Message != "Activity Type not found" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestHandler_GetBloodTestUnit_NotFoundLabel(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/blood_test_units/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.bloodTestUnits.get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Message != "Blood Test Unit not found" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestHandler_CreateDuplicate(t *testing.T) {
	h, e := newTestHandler()
	h.activityTypes.svc.Create(context.Background(), Input{Name: "Running"})

	body := `{"name":"Running"}`
	req := httptest.NewRequest(http.MethodPost, "/activity_types", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.activityTypes.create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
	if he.Message != "Activity Type already exists" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

// Resources are isolated: the same name can exist in both tables.
func TestHandler_ResourcesIndependent(t *testing.T) {
	h, _ := newTestHandler()

	if _, err := h.activityTypes.svc.Create(context.Background(), Input{Name: "mg/dL"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.bloodTestUnits.svc.Create(context.Background(), Input{Name: "mg/dL"}); err != nil {
		t.Fatalf("expected independent tables, got %v", err)
	}
}

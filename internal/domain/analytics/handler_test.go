package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/healthtrack/internal/domain/healthdata"
)

func newTestHandler(records *mockRecords) (*Handler, *echo.Echo) {
	h := NewHandler(newTestServiceAt(records, now))
	e := echo.New()
	return h, e
}

func TestHandler_GetHealthScore(t *testing.T) {
	h, e := newTestHandler(&mockRecords{})
	req := httptest.NewRequest(http.MethodGet, "/users/1/get_health_score?days=7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("1")

	if err := h.GetHealthScore(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got HealthScore
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.UserID != 1 {
		t.Errorf("expected user_id 1, got %d", got.UserID)
	}
}

func TestHandler_GetHealthScore_InvalidUserID(t *testing.T) {
	h, e := newTestHandler(&mockRecords{})
	req := httptest.NewRequest(http.MethodGet, "/users/abc/get_health_score", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("abc")

	err := h.GetHealthScore(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
}

func TestHandler_GetActivityStats_UnknownPeriod(t *testing.T) {
	h, e := newTestHandler(&mockRecords{})
	req := httptest.NewRequest(http.MethodGet, "/users/1/physical_activities/stats/last_year", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id", "period")
	c.SetParamValues("1", "last_year")

	err := h.GetActivityStats(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
}

func TestHandler_GetActivityStats(t *testing.T) {
	h, e := newTestHandler(&mockRecords{
		activities: []*healthdata.PhysicalActivity{activityOn(1, 30, 200)},
	})
	req := httptest.NewRequest(http.MethodGet, "/users/1/physical_activities/stats/last_week", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id", "period")
	c.SetParamValues("1", "last_week")

	if err := h.GetActivityStats(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got ActivityStats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.Period != PeriodLastWeek {
		t.Errorf("expected period last_week, got %s", got.Period)
	}
}

package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func patientContext(e *echo.Echo, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/fhir_patient/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(id)
	return c, rec
}

func TestHandler_GetPatient_Demo(t *testing.T) {
	h := NewHandler(NewService("http://127.0.0.1:1"))
	e := echo.New()
	c, rec := patientContext(e, "example")

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	h := NewHandler(NewService(srv.URL))
	e := echo.New()
	c, _ := patientContext(e, "missing")

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
	if he.Message != "Patient not found in FHIR server" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestHandler_GetPatient_RelaysUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	h := NewHandler(NewService(srv.URL))
	e := echo.New()
	c, _ := patientContext(e, "p1")

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusForbidden {
		t.Errorf("expected relayed 403, got %d", he.Code)
	}
	if he.Message != "FHIR server error" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestHandler_GetPatient_ConnError(t *testing.T) {
	h := NewHandler(NewService("http://127.0.0.1:1"))
	e := echo.New()
	c, _ := patientContext(e, "p1")

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", he.Code)
	}
}

func TestHandler_GetServerStatus_NeverErrors(t *testing.T) {
	h := NewHandler(NewService("http://127.0.0.1:1"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/fhir_server_status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetServerStatus(c); err != nil {
		t.Fatalf("status endpoint must not error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoBackend records the last request and replies with a fixed status and
// body.
type echoBackend struct {
	srv        *httptest.Server
	lastMethod string
	lastPath   string
	lastQuery  string
	lastBody   string
	lastHeader http.Header
	status     int
	body       string
}

func newEchoBackend(status int, body string) *echoBackend {
	b := &echoBackend{status: status, body: body}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.lastMethod = r.Method
		b.lastPath = r.URL.Path
		b.lastQuery = r.URL.RawQuery
		b.lastBody = string(raw)
		b.lastHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(b.status)
		w.Write([]byte(b.body))
	}))
	return b
}

func newTestGateway(t *testing.T) (*echo.Echo, map[string]*echoBackend) {
	t.Helper()
	backends := map[string]*echoBackend{
		"users":       newEchoBackend(http.StatusOK, `{"service":"users"}`),
		"refdata":     newEchoBackend(http.StatusOK, `{"service":"refdata"}`),
		"healthdata":  newEchoBackend(http.StatusOK, `{"service":"healthdata"}`),
		"analytics":   newEchoBackend(http.StatusOK, `{"service":"analytics"}`),
		"integration": newEchoBackend(http.StatusOK, `{"service":"integration"}`),
	}
	for _, b := range backends {
		t.Cleanup(b.srv.Close)
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	gw := New(Backends{
		Users:       backends["users"].srv.URL,
		RefData:     backends["refdata"].srv.URL,
		HealthData:  backends["healthdata"].srv.URL,
		Analytics:   backends["analytics"].srv.URL,
		Integration: backends["integration"].srv.URL,
	})
	gw.RegisterRoutes(e)
	return e, backends
}

func TestGateway_ForwardsVerbatim(t *testing.T) {
	e, backends := newTestGateway(t)

	body := `{"username":"alice","email":"a@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users?skip=5&limit=10", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Request-ID", "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	u := backends["users"]
	if u.lastMethod != http.MethodPost || u.lastPath != "/users" {
		t.Errorf("unexpected upstream request: %s %s", u.lastMethod, u.lastPath)
	}
	if u.lastQuery != "skip=5&limit=10" {
		t.Errorf("query string not forwarded: %q", u.lastQuery)
	}
	if u.lastBody != body {
		t.Errorf("body not forwarded verbatim: %q", u.lastBody)
	}
	if u.lastHeader.Get("X-Request-ID") != "rid-1" {
		t.Error("headers not forwarded")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected relayed 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"service":"users"}` {
		t.Errorf("backend body not relayed verbatim: %s", rec.Body.String())
	}
}

func TestGateway_RelaysErrorStatus(t *testing.T) {
	e, backends := newTestGateway(t)
	backends["users"].status = http.StatusNotFound
	backends["users"].body = `{"detail":"User not found"}`

	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected relayed 404, got %d", rec.Code)
	}
	if rec.Body.String() != `{"detail":"User not found"}` {
		t.Errorf("error body not relayed: %s", rec.Body.String())
	}
}

func TestGateway_RouteTable(t *testing.T) {
	e, backends := newTestGateway(t)

	cases := []struct {
		method  string
		path    string
		backend string
		want    string
	}{
		{http.MethodGet, "/users/1", "users", "/users/1"},
		{http.MethodPost, "/users/", "users", "/users"},
		{http.MethodGet, "/activity_types", "refdata", "/activity_types"},
		{http.MethodGet, "/physical_activities/", "healthdata", "/physical_activities"},
		{http.MethodGet, "/blood_test_units/3", "refdata", "/blood_test_units/3"},
		{http.MethodGet, "/physical_activities/9", "healthdata", "/physical_activities/9"},
		{http.MethodGet, "/users/1/physical_activities", "healthdata", "/users/1/physical_activities"},
		{http.MethodGet, "/users/1/sleep_activities", "healthdata", "/users/1/sleep_activities"},
		{http.MethodGet, "/users/1/blood_tests", "healthdata", "/users/1/blood_tests"},
		{http.MethodGet, "/users/1/get_health_score", "analytics", "/users/1/get_health_score"},
		{http.MethodGet, "/users/1/physical_activities/stats/last_week", "analytics", "/users/1/physical_activities/stats/last_week"},
		{http.MethodGet, "/fhir_patient/example", "integration", "/fhir_patient/example"},
		{http.MethodGet, "/fhir_server_status", "integration", "/fhir_server_status"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		b := backends[tc.backend]
		if b.lastPath != tc.want {
			t.Errorf("%s %s: expected %s backend to see %s, saw %q",
				tc.method, tc.path, tc.backend, tc.want, b.lastPath)
		}
	}
}

func TestGateway_UpstreamDown(t *testing.T) {
	e := echo.New()
	gw := New(Backends{
		Users:       "http://127.0.0.1:1",
		RefData:     "http://127.0.0.1:1",
		HealthData:  "http://127.0.0.1:1",
		Analytics:   "http://127.0.0.1:1",
		Integration: "http://127.0.0.1:1",
	})
	gw.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for unreachable backend, got %d", rec.Code)
	}
}

func TestGateway_HealthAggregation(t *testing.T) {
	e, _ := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var report AggregateHealth
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if report.Status != "healthy" {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if len(report.Services) != 5 {
		t.Errorf("expected 5 services, got %v", report.Services)
	}
}

func TestGateway_HealthDegraded(t *testing.T) {
	e, backends := newTestGateway(t)
	backends["analytics"].srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var report AggregateHealth
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if report.Status != "degraded" {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Services["analytics"] != "unreachable" {
		t.Errorf("expected analytics unreachable, got %v", report.Services)
	}
}

// Package gateway is the single public entry point of the suite. It routes
// each request to the owning backend service and relays the backend's
// status and body verbatim.
package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/healthtrack/internal/platform/httpx"
)

const (
	proxyTimeout  = 30 * time.Second
	healthTimeout = 2 * time.Second
)

// Backends holds the base URLs of the five downstream services.
type Backends struct {
	Users       string
	RefData     string
	HealthData  string
	Analytics   string
	Integration string
}

type Gateway struct {
	backends Backends
	client   *http.Client
	prober   *httpx.Client
}

func New(backends Backends) *Gateway {
	return &Gateway{
		backends: backends,
		client:   &http.Client{Timeout: proxyTimeout},
		prober:   httpx.NewClient(healthTimeout),
	}
}

// RegisterRoutes wires the route table. Echo prefers static over param over
// wildcard segments, so the analytics and health-data routes under /users
// shadow the catch-all forward to the user service.
func (g *Gateway) RegisterRoutes(e *echo.Echo) {
	e.Any("/users*", g.forward(g.backends.Users))
	e.GET("/users/:user_id/get_health_score", g.forward(g.backends.Analytics))
	e.GET("/users/:user_id/physical_activities/stats/:period", g.forward(g.backends.Analytics))
	e.Any("/users/:user_id/physical_activities*", g.forward(g.backends.HealthData))
	e.Any("/users/:user_id/sleep_activities*", g.forward(g.backends.HealthData))
	e.Any("/users/:user_id/blood_tests*", g.forward(g.backends.HealthData))

	e.Any("/activity_types*", g.forward(g.backends.RefData))
	e.Any("/blood_test_units*", g.forward(g.backends.RefData))

	e.Any("/physical_activities*", g.forward(g.backends.HealthData))
	e.Any("/sleep_activities*", g.forward(g.backends.HealthData))
	e.Any("/blood_tests*", g.forward(g.backends.HealthData))

	e.GET("/fhir_patient/:patient_id", g.forward(g.backends.Integration))
	e.GET("/fhir_server_status", g.forward(g.backends.Integration))

	e.GET("/health", g.Health)
}

// forward builds a handler that re-issues the incoming request against the
// given backend, preserving method, path, query string, headers, and body.
func (g *Gateway) forward(baseURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		in := c.Request()

		target := baseURL + in.URL.Path
		if in.URL.RawQuery != "" {
			target += "?" + in.URL.RawQuery
		}

		out, err := http.NewRequestWithContext(in.Context(), in.Method, target, in.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "invalid upstream request: "+err.Error())
		}
		out.Header = in.Header.Clone()

		resp, err := g.client.Do(out)
		if err != nil {
			return mapProxyErr(err)
		}
		defer resp.Body.Close()

		header := c.Response().Header()
		for k, vv := range resp.Header {
			if k == "Content-Length" || k == "Connection" || k == "Transfer-Encoding" {
				continue
			}
			for _, v := range vv {
				header.Add(k, v)
			}
		}
		return c.Stream(resp.StatusCode, resp.Header.Get(echo.HeaderContentType), resp.Body)
	}
}

func mapProxyErr(err error) error {
	switch {
	case httpx.IsTimeout(err) || errors.Is(err, http.ErrHandlerTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "upstream service timed out")
	default:
		return echo.NewHTTPError(http.StatusServiceUnavailable, "upstream service unavailable: "+err.Error())
	}
}

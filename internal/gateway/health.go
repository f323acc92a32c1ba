package gateway

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// AggregateHealth is the fan-out health report for the whole suite.
type AggregateHealth struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Services map[string]string `json:"services"`
}

// Health probes every backend's /health concurrently with a short timeout
// and reports per-service reachability. The gateway answers 200 when all
// backends are healthy and 503 otherwise.
func (g *Gateway) Health(c echo.Context) error {
	targets := map[string]string{
		"users":       g.backends.Users,
		"refdata":     g.backends.RefData,
		"healthdata":  g.backends.HealthData,
		"analytics":   g.backends.Analytics,
		"integration": g.backends.Integration,
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	services := make(map[string]string, len(targets))

	ctx := c.Request().Context()
	for name, base := range targets {
		wg.Add(1)
		go func(name, base string) {
			defer wg.Done()
			status := "healthy"
			if err := g.probeHealth(ctx, base); err != nil {
				status = "unreachable"
			}
			mu.Lock()
			services[name] = status
			mu.Unlock()
		}(name, base)
	}
	wg.Wait()

	report := &AggregateHealth{
		Status:   "healthy",
		Service:  "gateway",
		Services: services,
	}
	code := http.StatusOK
	for _, s := range services {
		if s != "healthy" {
			report.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}
	return c.JSON(code, report)
}

func (g *Gateway) probeHealth(ctx context.Context, baseURL string) error {
	return g.prober.GetJSON(ctx, baseURL+"/health", nil)
}

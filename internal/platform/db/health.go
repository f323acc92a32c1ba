package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler returns the per-service health check endpoint. The payload
// shape matches what the other services in the suite expect when the
// gateway fans out its own health check.
func HealthHandler(service string, pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := map[string]any{
			"status":  "healthy",
			"service": service,
		}
		if pool == nil {
			return c.JSON(http.StatusOK, body)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			body["status"] = "unhealthy"
			body["database"] = "disconnected"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["database"] = "connected"
		return c.JSON(http.StatusOK, body)
	}
}

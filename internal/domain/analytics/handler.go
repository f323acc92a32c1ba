package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/users/:user_id/get_health_score", h.GetHealthScore)
	e.GET("/users/:user_id/physical_activities/stats/:period", h.GetActivityStats)
}

func (h *Handler) GetHealthScore(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	days, _ := strconv.Atoi(c.QueryParam("days"))
	score := h.svc.HealthScore(c.Request().Context(), userID, days)
	return c.JSON(http.StatusOK, score)
}

func (h *Handler) GetActivityStats(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	stats, err := h.svc.ActivityStats(c.Request().Context(), userID, c.Param("period"))
	if errors.Is(err, ErrUnknownPeriod) {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

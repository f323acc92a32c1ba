package healthdata

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/healthtrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/physical_activities", h.CreateActivity)
	e.GET("/physical_activities", h.ListActivities)
	e.GET("/physical_activities/:id", h.GetActivity)
	e.PUT("/physical_activities/:id", h.UpdateActivity)
	e.DELETE("/physical_activities/:id", h.DeleteActivity)
	e.GET("/users/:user_id/physical_activities", h.ListUserActivities)

	e.POST("/sleep_activities", h.CreateSleep)
	e.GET("/sleep_activities", h.ListSleep)
	e.GET("/sleep_activities/:id", h.GetSleep)
	e.PUT("/sleep_activities/:id", h.UpdateSleep)
	e.DELETE("/sleep_activities/:id", h.DeleteSleep)
	e.GET("/users/:user_id/sleep_activities", h.ListUserSleep)

	e.POST("/blood_tests", h.CreateBloodTest)
	e.GET("/blood_tests", h.ListBloodTests)
	e.GET("/blood_tests/:id", h.GetBloodTest)
	e.PUT("/blood_tests/:id", h.UpdateBloodTest)
	e.DELETE("/blood_tests/:id", h.DeleteBloodTest)
	e.GET("/users/:user_id/blood_tests", h.ListUserBloodTests)
}

// mapErr translates service errors into the suite's HTTP taxonomy: every
// missing reference or row is a 404 with the owning entity's message.
func mapErr(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrActivityTypeNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Activity type not found")
	case errors.Is(err, ErrUnitNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Blood test unit not found")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Record not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// -- Physical activities --

func (h *Handler) CreateActivity(c echo.Context) error {
	var in PhysicalActivityInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.CreateActivity(c.Request().Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListActivities(c echo.Context) error {
	pg := pagination.FromContext(c)
	out, err := h.svc.ListActivities(c.Request().Context(), pg.Limit, pg.Skip)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ListUserActivities(c echo.Context) error {
	userID, err := param(c, "user_id")
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	out, err := h.svc.ListActivitiesByUser(c.Request().Context(), userID, pg.Limit, pg.Skip)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetActivity(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	a, err := h.svc.GetActivity(c.Request().Context(), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateActivity(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	var in PhysicalActivityInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateActivity(c.Request().Context(), id, in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteActivity(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	a, err := h.svc.DeleteActivity(c.Request().Context(), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, a)
}

// -- Sleep activities --

func (h *Handler) CreateSleep(c echo.Context) error {
	var in SleepActivityInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := h.svc.CreateSleep(c.Request().Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ListSleep(c echo.Context) error {
	pg := pagination.FromContext(c)
	out, err := h.svc.ListSleep(c.Request().Context(), pg.Limit, pg.Skip)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ListUserSleep(c echo.Context) error {
	userID, err := param(c, "user_id")
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	out, err := h.svc.ListSleepByUser(c.Request().Context(), userID, pg.Limit, pg.Skip)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSleep(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	s, err := h.svc.GetSleep(c.Request().Context(), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) UpdateSleep(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	var in SleepActivityInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := h.svc.UpdateSleep(c.Request().Context(), id, in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSleep(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	s, err := h.svc.DeleteSleep(c.Request().Context(), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, s)
}

// -- Blood tests --

func (h *Handler) CreateBloodTest(c echo.Context) error {
	var in BloodTestInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.CreateBloodTest(c.Request().Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBloodTests(c echo.Context) error {
	pg := pagination.FromContext(c)
	out, err := h.svc.ListBloodTests(c.Request().Context(), pg.Limit, pg.Skip)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ListUserBloodTests(c echo.Context) error {
	userID, err := param(c, "user_id")
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	out, err := h.svc.ListBloodTestsByUser(c.Request().Context(), userID, pg.Limit, pg.Skip)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetBloodTest(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	b, err := h.svc.GetBloodTest(c.Request().Context(), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBloodTest(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	var in BloodTestInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.UpdateBloodTest(c.Request().Context(), id, in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBloodTest(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return err
	}
	b, err := h.svc.DeleteBloodTest(c.Request().Context(), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, b)
}

func param(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

package refdata

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/healthtrack/pkg/pagination"
)

// Handler exposes both lookup tables. Each resource gets the same CRUD
// surface; only the path prefix and the not-found label differ.
type Handler struct {
	activityTypes  *resource
	bloodTestUnits *resource
}

type resource struct {
	svc   *Service
	label string
}

func NewHandler(activityTypes, bloodTestUnits *Service) *Handler {
	return &Handler{
		activityTypes:  &resource{svc: activityTypes, label: "Activity Type"},
		bloodTestUnits: &resource{svc: bloodTestUnits, label: "Blood Test Unit"},
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	register := func(prefix string, res *resource) {
		e.POST(prefix, res.create)
		e.GET(prefix, res.list)
		e.GET(prefix+"/:id", res.get)
		e.PUT(prefix+"/:id", res.update)
		e.DELETE(prefix+"/:id", res.delete)
	}
	register("/activity_types", h.activityTypes)
	register("/blood_test_units", h.bloodTestUnits)
}

func (r *resource) create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	row, err := r.svc.Create(c.Request().Context(), in)
	if errors.Is(err, ErrDuplicateName) {
		return echo.NewHTTPError(http.StatusBadRequest, r.label+" already exists")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, row)
}

func (r *resource) list(c echo.Context) error {
	pg := pagination.FromContext(c)
	rows, err := r.svc.List(c.Request().Context(), pg.Limit, pg.Skip)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

func (r *resource) get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	row, err := r.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, r.label+" not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, row)
}

func (r *resource) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	row, err := r.svc.Update(c.Request().Context(), id, in)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, r.label+" not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, row)
}

func (r *resource) delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	row, err := r.svc.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, r.label+" not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, row)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

package integration

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/healthtrack/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/fhir_patient/:patient_id", h.GetPatient)
	e.GET("/fhir_server_status", h.GetServerStatus)
}

func (h *Handler) GetPatient(c echo.Context) error {
	patient, err := h.svc.Patient(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return mapFHIRErr(err)
	}
	return c.JSON(http.StatusOK, patient)
}

func (h *Handler) GetServerStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Status(c.Request().Context()))
}

// mapFHIRErr translates upstream failures into the adapter's status codes:
// FHIR 404 becomes a patient-not-found 404, any other upstream status is
// relayed, timeouts become 504 and connection failures 503.
func mapFHIRErr(err error) error {
	var serr *httpx.StatusError
	switch {
	case errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found in FHIR server")
	case errors.As(err, &serr):
		return echo.NewHTTPError(serr.StatusCode, "FHIR server error")
	case httpx.IsTimeout(err):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "FHIR server timeout")
	case httpx.IsConnError(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "FHIR server connection error: "+err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving patient data: "+err.Error())
	}
}

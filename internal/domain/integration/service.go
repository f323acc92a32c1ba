package integration

import (
	"context"
	"errors"
	"time"

	"github.com/healthtrack/healthtrack/internal/platform/httpx"
)

const (
	patientTimeout = 10 * time.Second
	patientRetries = 3
	probeTimeout   = 5 * time.Second
)

// ServerStatus reports reachability of the upstream FHIR server.
type ServerStatus struct {
	Status         string `json:"status"`
	FHIRServerURL  string `json:"fhir_server_url"`
	ResponseStatus int    `json:"response_status,omitempty"`
	Error          string `json:"error,omitempty"`
}

type Service struct {
	patients *httpx.Client
	probe    *httpx.Client
	baseURL  string
}

func NewService(fhirServerURL string) *Service {
	return &Service{
		patients: httpx.NewClient(patientTimeout, httpx.WithMaxAttempts(patientRetries)),
		probe:    httpx.NewClient(probeTimeout),
		baseURL:  fhirServerURL,
	}
}

// Patient fetches and normalizes a FHIR Patient resource. The id "example"
// short-circuits to a fixed demo record without an outbound call. Transport
// and upstream-status failures are returned as-is for the handler to map.
func (s *Service) Patient(ctx context.Context, patientID string) (*Patient, error) {
	if patientID == "example" {
		return &Patient{
			PatientID:    patientID,
			Name:         "John Doe",
			BirthDate:    "1990-01-01",
			Gender:       "male",
			Address:      "123 Main St, City, State 12345",
			Contact:      "john.doe@email.com",
			ResourceType: "Patient",
		}, nil
	}

	var f fhirPatient
	if err := s.patients.GetJSON(ctx, s.baseURL+"/Patient/"+patientID, &f); err != nil {
		return nil, err
	}
	return f.normalize(patientID), nil
}

// Status probes the FHIR server's /metadata endpoint. It never fails: any
// HTTP response, 2xx or not, counts as connected, and transport errors are
// reported as disconnected.
func (s *Service) Status(ctx context.Context) *ServerStatus {
	st := &ServerStatus{FHIRServerURL: s.baseURL}

	err := s.probe.GetJSON(ctx, s.baseURL+"/metadata", nil)
	var serr *httpx.StatusError
	switch {
	case err == nil:
		st.Status = "connected"
		st.ResponseStatus = 200
	case errors.As(err, &serr):
		st.Status = "connected"
		st.ResponseStatus = serr.StatusCode
	default:
		st.Status = "disconnected"
		st.Error = err.Error()
	}
	return st
}

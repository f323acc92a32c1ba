package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fhirPatientJSON = `{
	"resourceType": "Patient",
	"name": [{"given": ["Jane", "Q"], "family": "Smith"}],
	"birthDate": "1985-03-12",
	"gender": "female",
	"address": [{"line": ["42 Elm St"], "city": "Springfield"}],
	"telecom": [{"value": "jane.smith@example.com"}]
}`

func TestService_Patient_Normalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Patient/123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/fhir+json")
		w.Write([]byte(fhirPatientJSON))
	}))
	defer srv.Close()

	svc := NewService(srv.URL)
	got, err := svc.Patient(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Patient{
		PatientID:    "123",
		Name:         "Jane Smith",
		BirthDate:    "1985-03-12",
		Gender:       "female",
		Address:      "42 Elm St, Springfield",
		Contact:      "jane.smith@example.com",
		ResourceType: "Patient",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patient mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Patient_UnknownFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resourceType": "Patient"}`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL)
	got, err := svc.Patient(context.Background(), "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Patient{
		PatientID:    "empty",
		Name:         "Unknown Unknown",
		BirthDate:    "Unknown",
		Gender:       "Unknown",
		Address:      "Unknown, Unknown",
		Contact:      "Unknown",
		ResourceType: "Patient",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patient mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Patient_DemoShortCircuit(t *testing.T) {
	// No server at all: "example" must never go out on the wire.
	svc := NewService("http://127.0.0.1:1")

	got, err := svc.Patient(context.Background(), "example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "John Doe" || got.BirthDate != "1990-01-01" {
		t.Errorf("unexpected demo patient: %+v", got)
	}
}

func TestService_Patient_RetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"gender": "male"})
	}))
	defer srv.Close()

	svc := NewService(srv.URL)
	got, err := svc.Patient(context.Background(), "retry")
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if got.Gender != "male" {
		t.Errorf("unexpected patient: %+v", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestService_Patient_NoRetryOn404(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := NewService(srv.URL)
	if _, err := svc.Patient(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("404 must not be retried, got %d attempts", calls)
	}
}

func TestService_Status_Connected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metadata" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL)
	st := svc.Status(context.Background())
	if st.Status != "connected" || st.ResponseStatus != 200 {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestService_Status_Disconnected(t *testing.T) {
	svc := NewService("http://127.0.0.1:1")

	st := svc.Status(context.Background())
	if st.Status != "disconnected" {
		t.Errorf("expected disconnected, got %+v", st)
	}
	if st.Error == "" {
		t.Error("expected error detail")
	}
}

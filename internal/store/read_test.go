package store

import (
	"context"
	"testing"

	"github.com/btxtech/prontuario/internal/record"
)

func TestGetPatient_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPatient(context.Background(), "missing")
	if !record.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEvent(context.Background(), "missing")
	if !record.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestGetSettings_NotFoundBeforeFirstInit(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSettings(context.Background())
	if !record.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestAllPatients_EmptyReturnsEmptySlice(t *testing.T) {
	s := newTestStore(t)

	patients, err := s.AllPatients(context.Background())
	if err != nil {
		t.Fatalf("AllPatients() failed: %v", err)
	}
	if patients == nil {
		t.Error("AllPatients() returned nil, want empty slice")
	}
	if len(patients) != 0 {
		t.Errorf("len = %d, want 0", len(patients))
	}
}

func TestAllPatients_OrderedByUpdatedAtDesc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []record.Patient{
		testPatient("p1", "Antiga", 100),
		testPatient("p2", "Recente", 300),
		testPatient("p3", "Meio", 200),
	} {
		if err := s.PutPatient(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	patients, err := s.AllPatients(ctx)
	if err != nil {
		t.Fatalf("AllPatients() failed: %v", err)
	}
	want := []string{"p2", "p3", "p1"}
	for i, id := range want {
		if patients[i].ID != id {
			t.Errorf("patients[%d].ID = %q, want %q", i, patients[i].ID, id)
		}
	}
}

func TestEventsByPatient_FiltersAndOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ev := range []record.Event{
		testClinicalEvent("e1", "p1", 100),
		testClinicalEvent("e2", "p2", 150),
		testRXEvent("e3", "p1", 300),
		testClinicalEvent("e4", "p1", 200),
	} {
		if err := s.PutEvent(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	events, err := s.EventsByPatient(ctx, "p1")
	if err != nil {
		t.Fatalf("EventsByPatient() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	// newest first
	want := []string{"e3", "e4", "e1"}
	for i, id := range want {
		if events[i].ID != id {
			t.Errorf("events[%d].ID = %q, want %q", i, events[i].ID, id)
		}
	}
}

func TestEventsByPatient_ReflectsPriorWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutEvent(ctx, testClinicalEvent("e1", "p1", 100)); err != nil {
		t.Fatal(err)
	}
	// a read begun after the write must see it - no stale index
	events, err := s.EventsByPatient(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("index read missed a committed write, len = %d", len(events))
	}
}

func TestEventsByType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ev := range []record.Event{
		testClinicalEvent("e1", "p1", 100),
		testRXEvent("e2", "p1", 200),
		testRXEvent("e3", "p2", 300),
	} {
		if err := s.PutEvent(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	events, err := s.EventsByType(ctx, record.TypeRX)
	if err != nil {
		t.Fatalf("EventsByType() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Type != record.TypeRX {
			t.Errorf("event %s type = %q, want rx", ev.ID, ev.Type)
		}
	}
}

func TestState_RoundTripAndZeroDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st, err := s.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() failed: %v", err)
	}
	if st.SelectedPatientID != "" {
		t.Errorf("fresh state cursor = %q, want empty", st.SelectedPatientID)
	}

	if err := s.PutState(ctx, AppState{SelectedPatientID: "p1"}); err != nil {
		t.Fatalf("PutState() failed: %v", err)
	}
	st, err = s.GetState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.SelectedPatientID != "p1" {
		t.Errorf("cursor = %q, want p1", st.SelectedPatientID)
	}
}

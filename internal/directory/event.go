package directory

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/btxtech/prontuario/internal/record"
)

// resolvePatient maps an empty patient ID to the selected patient.
func (s *Session) resolvePatient(patientID string) (string, error) {
	if patientID != "" {
		return patientID, nil
	}
	if s.SelectedPatientID == "" {
		return "", record.NewValidationError("patientId", "nenhum paciente selecionado")
	}
	return s.SelectedPatientID, nil
}

// appendEvent persists a constructed event, touches its patient and
// refreshes the projections.
func (s *Session) appendEvent(ctx context.Context, ev record.Event) (record.Event, error) {
	if err := s.store.PutEvent(ctx, ev); err != nil {
		return record.Event{}, err
	}
	if err := s.Touch(ctx, ev.PatientID); err != nil {
		return record.Event{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return record.Event{}, err
	}
	s.log.Info().
		Str("event", ev.ID).
		Str("patient", ev.PatientID).
		Str("type", string(ev.Type)).
		Msg("event appended")
	return ev, nil
}

// AddClinicalEvent appends a clinical-note event (evolution, procedure,
// exam or note). An empty patientID targets the selected patient.
func (s *Session) AddClinicalEvent(ctx context.Context, patientID string, t record.EventType, chief, vitals, cid, text string) (record.Event, error) {
	pid, err := s.resolvePatient(patientID)
	if err != nil {
		return record.Event{}, err
	}
	if _, err := s.store.GetPatient(ctx, pid); err != nil {
		return record.Event{}, err
	}
	ev, err := record.NewClinicalEvent(s.clock, pid, t, chief, vitals, cid, text)
	if err != nil {
		return record.Event{}, err
	}
	return s.appendEvent(ctx, ev)
}

// AddDocumentEvent appends a document event (rx, certificate, budget
// or receipt). An empty patientID targets the selected patient.
func (s *Session) AddDocumentEvent(ctx context.Context, patientID string, t record.EventType, title string, payload *record.DocPayload) (record.Event, error) {
	pid, err := s.resolvePatient(patientID)
	if err != nil {
		return record.Event{}, err
	}
	if _, err := s.store.GetPatient(ctx, pid); err != nil {
		return record.Event{}, err
	}
	ev, err := record.NewDocumentEvent(s.clock, pid, t, title, payload)
	if err != nil {
		return record.Event{}, err
	}
	return s.appendEvent(ctx, ev)
}

// DeleteEvent removes one event after consulting the gate.
func (s *Session) DeleteEvent(ctx context.Context, id string, gate Gate) error {
	if gate == nil || !gate(actionDeleteEvent) {
		return ErrGateDenied
	}
	if _, err := s.store.GetEvent(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event", id).Msg("event deleted")
	return s.Refresh(ctx)
}

// PatientEvents returns a patient's timeline, newest first.
func (s *Session) PatientEvents(ctx context.Context, patientID string) ([]record.Event, error) {
	pid, err := s.resolvePatient(patientID)
	if err != nil {
		return nil, err
	}
	return s.store.EventsByPatient(ctx, pid)
}

// EventsOfType returns every event of one type across all patients,
// newest first.
func (s *Session) EventsOfType(ctx context.Context, t record.EventType) ([]record.Event, error) {
	if !t.Valid() {
		return nil, record.NewValidationError("type", "tipo desconhecido: "+string(t))
	}
	return s.store.EventsByType(ctx, t)
}

// SearchTimeline filters a patient's timeline by an accent- and
// case-insensitive substring over the whole serialized event, so
// payload fields match too. An empty query returns the full timeline.
func (s *Session) SearchTimeline(ctx context.Context, patientID, query string) ([]record.Event, error) {
	events, err := s.PatientEvents(ctx, patientID)
	if err != nil {
		return nil, err
	}
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return events, nil
	}
	out := []record.Event{}
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return nil, err
		}
		if strings.Contains(fold(string(data))+" "+fold(record.TypeLabel(ev.Type)), q) {
			out = append(out, ev)
		}
	}
	return out, nil
}

package directory

import (
	"context"

	"github.com/btxtech/prontuario/internal/document"
)

// EventDocument renders the printable HTML for one event and proposes
// a file name for it.
func (s *Session) EventDocument(ctx context.Context, eventID string) (html, filename string, err error) {
	ev, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return "", "", err
	}
	p, err := s.store.GetPatient(ctx, ev.PatientID)
	if err != nil {
		return "", "", err
	}
	html = document.RenderEvent(ev, p, s.Settings)
	return html, document.SuggestedFileName(ev, p), nil
}

// HistoryDocument renders the full-timeline printout for a patient.
// An empty patientID targets the selected patient.
func (s *Session) HistoryDocument(ctx context.Context, patientID string) (html, filename string, err error) {
	pid, err := s.resolvePatient(patientID)
	if err != nil {
		return "", "", err
	}
	p, err := s.store.GetPatient(ctx, pid)
	if err != nil {
		return "", "", err
	}
	events, err := s.store.EventsByPatient(ctx, pid)
	if err != nil {
		return "", "", err
	}
	html = document.RenderHistory(p, events, s.Settings, s.clock.Now())
	return html, document.HistoryFileName(p), nil
}

package record

import (
	"strings"

	"github.com/google/uuid"
)

// NewClinicalEvent builds a clinical-note event (evolution, procedure,
// exam or note). An event with neither text nor chief complaint is
// rejected; this is the only creation-time validation in the core.
//
// The returned event is complete and ready for insertion. Events are
// never edited after creation.
func NewClinicalEvent(clk Clock, patientID string, t EventType, chief, vitals, cid, text string) (Event, error) {
	if !t.Valid() || t.Documental() {
		return Event{}, NewValidationError("type", "not a clinical event type: "+string(t))
	}
	if patientID == "" {
		return Event{}, NewValidationError("patientId", "required")
	}
	chief = strings.TrimSpace(chief)
	vitals = strings.TrimSpace(vitals)
	cid = strings.TrimSpace(cid)
	text = strings.TrimSpace(text)
	if text == "" && chief == "" {
		return Event{}, NewValidationError("text", "either clinical text or chief complaint is required")
	}
	return Event{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Type:      t,
		CID:       cid,
		Chief:     chief,
		Vitals:    vitals,
		Text:      text,
		Summary:   DeriveSummary(t, chief, cid),
		CreatedAt: clk.Now(),
	}, nil
}

// NewDocumentEvent builds a document-producing event (rx, certificate,
// budget or receipt). The payload variant must match the type. When
// title is empty, the summary is derived from the payload.
func NewDocumentEvent(clk Clock, patientID string, t EventType, title string, payload *DocPayload) (Event, error) {
	if !t.Documental() {
		return Event{}, NewValidationError("type", "not a document event type: "+string(t))
	}
	if patientID == "" {
		return Event{}, NewValidationError("patientId", "required")
	}
	if !payload.Matches(t) {
		return Event{}, NewValidationError("payload", "payload does not match type "+string(t))
	}
	summary := strings.TrimSpace(title)
	if summary == "" {
		summary = DeriveDocSummary(t, payload)
	}
	return Event{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Type:      t,
		Summary:   summary,
		Payload:   payload,
		CreatedAt: clk.Now(),
	}, nil
}

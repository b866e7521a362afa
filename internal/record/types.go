package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies one of the closed set of clinical event kinds.
type EventType string

const (
	TypeEvolution   EventType = "evolution"
	TypeProcedure   EventType = "procedure"
	TypeExam        EventType = "exam"
	TypeNote        EventType = "note"
	TypeRX          EventType = "rx"
	TypeCertificate EventType = "certificate"
	TypeBudget      EventType = "budget"
	TypeReceipt     EventType = "receipt"
)

// EventTypes lists every valid event type, clinical kinds first.
var EventTypes = []EventType{
	TypeEvolution, TypeProcedure, TypeExam, TypeNote,
	TypeRX, TypeCertificate, TypeBudget, TypeReceipt,
}

// Valid reports whether t is a member of the closed type set.
func (t EventType) Valid() bool {
	switch t {
	case TypeEvolution, TypeProcedure, TypeExam, TypeNote,
		TypeRX, TypeCertificate, TypeBudget, TypeReceipt:
		return true
	}
	return false
}

// Documental reports whether t is a document-producing type, i.e. an
// event carrying a structured payload rather than free-text fields.
func (t EventType) Documental() bool {
	switch t {
	case TypeRX, TypeCertificate, TypeBudget, TypeReceipt:
		return true
	}
	return false
}

// Patient is a patient profile. ID is immutable for the record's
// lifetime; UpdatedAt is refreshed on every edit and on every event
// attached to the patient (timeline activity counts as a touch).
type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"` // CPF/CNS
	Phone      string `json:"phone,omitempty"`
	Birth      string `json:"birth,omitempty"` // yyyy-mm-dd
	Notes      string `json:"notes,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

// Settings holds the professional/clinic identity printed on documents
// plus the access PIN gating destructive actions. Exactly one instance
// exists after first initialization, stored under a fixed key.
type Settings struct {
	ProfessionalName    string `json:"professionalName"`
	ProfessionalReg     string `json:"professionalReg"`
	ProfessionalContact string `json:"professionalContact"`
	ProfessionalEmail   string `json:"professionalEmail"`
	ProfessionalAddress string `json:"professionalAddress"`
	ClinicName          string `json:"clinicName"`
	AccessPIN           string `json:"accessPin"`
}

// DefaultPIN is used by the access gate when no PIN has been configured.
const DefaultPIN = "007"

// DefaultSettings returns the settings seeded on first run.
func DefaultSettings() Settings {
	return Settings{
		ProfessionalContact: "(91) 99987-3835",
		ProfessionalEmail:   "btxtecbaixotocantins@gmail.com",
		ClinicName:          "BTXTech",
	}
}

// Event is an immutable, timestamped record of a clinical or
// administrative action tied to one patient.
//
// Clinical-note types (evolution, procedure, exam, note) populate the
// free-text fields; document types carry Payload instead. CreatedAt is
// assigned once and is the sole ordering key for timelines.
type Event struct {
	ID        string      `json:"id"`
	PatientID string      `json:"patientId"`
	Type      EventType   `json:"type"`
	CID       string      `json:"cid,omitempty"`
	Chief     string      `json:"chief,omitempty"`
	Vitals    string      `json:"vitals,omitempty"`
	Text      string      `json:"text,omitempty"`
	Summary   string      `json:"summary,omitempty"`
	Payload   *DocPayload `json:"payload,omitempty"`
	CreatedAt int64       `json:"createdAt"`
}

// RXItem is one drug/dosage line of a prescription.
type RXItem struct {
	Drug   string `json:"drug"`
	Dosage string `json:"pos"`
}

// RXPayload is the structured body of a prescription event.
type RXPayload struct {
	Items []RXItem `json:"items"`
	Obs   string   `json:"obs,omitempty"`
}

// CertificatePayload is the structured body of a medical certificate.
// Start is a yyyy-mm-dd date; the leave covers Days inclusive days
// starting at Start.
type CertificatePayload struct {
	Days  int    `json:"days"`
	Start string `json:"start"`
	Text  string `json:"text,omitempty"`
}

// BudgetPayload is the structured body of a budget event.
type BudgetPayload struct {
	Text string `json:"text"`
	Days int    `json:"days"` // validity window in days
	Obs  string `json:"obs,omitempty"`
}

// ReceiptPayload is the structured body of a receipt event.
type ReceiptPayload struct {
	Value string `json:"value"`
	For   string `json:"for"`
	Pay   string `json:"pay,omitempty"`
	Obs   string `json:"obs,omitempty"`
}

// DocPayload is the tagged union of document payloads. Exactly one
// variant is non-nil, selected by the owning event's Type. The union
// serializes as the bare variant object so the wire format matches the
// v1 backup file.
type DocPayload struct {
	RX          *RXPayload
	Certificate *CertificatePayload
	Budget      *BudgetPayload
	Receipt     *ReceiptPayload
}

// Matches reports whether the populated variant corresponds to t.
func (p *DocPayload) Matches(t EventType) bool {
	if p == nil {
		return false
	}
	switch t {
	case TypeRX:
		return p.RX != nil
	case TypeCertificate:
		return p.Certificate != nil
	case TypeBudget:
		return p.Budget != nil
	case TypeReceipt:
		return p.Receipt != nil
	}
	return false
}

func (p *DocPayload) active() any {
	switch {
	case p.RX != nil:
		return p.RX
	case p.Certificate != nil:
		return p.Certificate
	case p.Budget != nil:
		return p.Budget
	case p.Receipt != nil:
		return p.Receipt
	}
	return nil
}

// MarshalJSON emits the active variant's object, untagged.
func (p DocPayload) MarshalJSON() ([]byte, error) {
	if v := p.active(); v != nil {
		return json.Marshal(v)
	}
	return []byte("{}"), nil
}

// DecodePayload parses raw payload JSON into the variant selected by t.
func DecodePayload(t EventType, data []byte) (*DocPayload, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	p := &DocPayload{}
	var dst any
	switch t {
	case TypeRX:
		p.RX = &RXPayload{}
		dst = p.RX
	case TypeCertificate:
		p.Certificate = &CertificatePayload{}
		dst = p.Certificate
	case TypeBudget:
		p.Budget = &BudgetPayload{}
		dst = p.Budget
	case TypeReceipt:
		p.Receipt = &ReceiptPayload{}
		dst = p.Receipt
	default:
		return nil, fmt.Errorf("decode payload: type %q carries no payload", t)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// eventAlias avoids UnmarshalJSON recursion while keeping the payload
// raw until the type tag is known.
type eventAlias struct {
	ID        string          `json:"id"`
	PatientID string          `json:"patientId"`
	Type      EventType       `json:"type"`
	CID       string          `json:"cid"`
	Chief     string          `json:"chief"`
	Vitals    string          `json:"vitals"`
	Text      string          `json:"text"`
	Summary   string          `json:"summary"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt int64           `json:"createdAt"`
}

// UnmarshalJSON decodes an event, resolving the payload union through
// the type tag.
func (e *Event) UnmarshalJSON(data []byte) error {
	var a eventAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Event{
		ID:        a.ID,
		PatientID: a.PatientID,
		Type:      a.Type,
		CID:       a.CID,
		Chief:     a.Chief,
		Vitals:    a.Vitals,
		Text:      a.Text,
		Summary:   a.Summary,
		CreatedAt: a.CreatedAt,
	}
	if len(a.Payload) > 0 && string(a.Payload) != "null" && a.Type.Documental() {
		p, err := DecodePayload(a.Type, a.Payload)
		if err != nil {
			return err
		}
		e.Payload = p
	}
	return nil
}

// Clock supplies current time as epoch milliseconds. Injected into
// every operation that stamps a record so tests stay deterministic.
type Clock interface {
	Now() int64
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

// Now returns the current time in epoch milliseconds.
func (SystemClock) Now() int64 { return time.Now().UnixMilli() }

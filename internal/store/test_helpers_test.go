package store

import (
	"path/filepath"
	"testing"

	"github.com/btxtech/prontuario/internal/record"
)

// newTestStore opens a store in a temp dir, cleaned up with the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPatient(id, name string, ts int64) record.Patient {
	return record.Patient{
		ID:        id,
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func testClinicalEvent(id, patientID string, ts int64) record.Event {
	return record.Event{
		ID:        id,
		PatientID: patientID,
		Type:      record.TypeEvolution,
		Chief:     "dor",
		Text:      "texto clínico",
		Summary:   "Evolução/Anamnese • dor",
		CreatedAt: ts,
	}
}

func testRXEvent(id, patientID string, ts int64) record.Event {
	return record.Event{
		ID:        id,
		PatientID: patientID,
		Type:      record.TypeRX,
		Summary:   "Receita • Amoxicilina",
		Payload: &record.DocPayload{RX: &record.RXPayload{
			Items: []record.RXItem{{Drug: "Amoxicilina", Dosage: "1 cp 8/8h por 7 dias"}},
			Obs:   "após alimentação",
		}},
		CreatedAt: ts,
	}
}

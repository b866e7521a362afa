package directory

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/btxtech/prontuario/internal/record"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold normalizes s for accent- and case-insensitive matching.
func fold(s string) string {
	out, _, err := transform.String(deaccent, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// SavePatient creates or updates a patient. A blank name is rejected;
// a blank ID means create. CreatedAt is stamped once, UpdatedAt on
// every save. The saved patient becomes the selected one.
func (s *Session) SavePatient(ctx context.Context, p record.Patient) (record.Patient, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return record.Patient{}, record.NewValidationError("name", "nome é obrigatório")
	}

	now := s.clock.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	} else {
		existing, err := s.store.GetPatient(ctx, p.ID)
		switch {
		case err == nil:
			p.CreatedAt = existing.CreatedAt
		case record.IsNotFound(err):
			// explicit ID on a new record, e.g. re-creating after delete
			p.CreatedAt = now
		default:
			return record.Patient{}, err
		}
	}
	p.UpdatedAt = now

	if err := s.store.PutPatient(ctx, p); err != nil {
		return record.Patient{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return record.Patient{}, err
	}
	s.SelectedPatientID = p.ID
	if err := s.persistCursor(ctx); err != nil {
		return record.Patient{}, err
	}
	s.log.Info().Str("patient", p.ID).Str("name", p.Name).Msg("patient saved")
	return p, nil
}

// Touch refreshes a patient's UpdatedAt so timeline activity bubbles
// the patient to the top of the roster. A missing patient is logged
// and ignored.
func (s *Session) Touch(ctx context.Context, id string) error {
	p, err := s.store.GetPatient(ctx, id)
	if err != nil {
		if record.IsNotFound(err) {
			s.log.Warn().Str("patient", id).Msg("touch: patient not found")
			return nil
		}
		return err
	}
	p.UpdatedAt = s.clock.Now()
	return s.store.PutPatient(ctx, p)
}

// DeletePatient removes a patient and every event in its timeline.
// The gate is consulted first; a refusal returns ErrGateDenied with
// nothing deleted. The cursor is repaired afterwards.
func (s *Session) DeletePatient(ctx context.Context, id string, gate Gate) error {
	if gate == nil || !gate(actionDeletePatient) {
		return ErrGateDenied
	}
	if _, err := s.store.GetPatient(ctx, id); err != nil {
		return err
	}
	removed, err := s.store.DeletePatientCascade(ctx, id)
	if err != nil {
		return err
	}
	s.log.Info().Str("patient", id).Int64("events_removed", removed).Msg("patient deleted")

	if err := s.Refresh(ctx); err != nil {
		return err
	}
	if s.SelectedPatientID == id {
		s.SelectedPatientID = ""
	}
	return s.repairCursor(ctx)
}

// SearchPatients filters the roster by an accent- and case-insensitive
// substring over name, identifier, phone and notes. An empty query
// matches everyone. Roster order is preserved.
func (s *Session) SearchPatients(query string) []record.Patient {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		out := make([]record.Patient, len(s.Patients))
		copy(out, s.Patients)
		return out
	}
	out := []record.Patient{}
	for _, p := range s.Patients {
		haystack := fold(p.Name + " " + p.Identifier + " " + p.Phone + " " + p.Notes)
		if strings.Contains(haystack, q) {
			out = append(out, p)
		}
	}
	return out
}

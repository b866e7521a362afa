package store

import (
	"context"

	"github.com/btxtech/prontuario/internal/record"
)

// PutPatient inserts or fully replaces a patient by primary key.
func (s *Store) PutPatient(ctx context.Context, p record.Patient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patients
		(id, name, identifier, phone, birth, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			identifier = excluded.identifier,
			phone = excluded.phone,
			birth = excluded.birth,
			notes = excluded.notes,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`,
		p.ID, p.Name, p.Identifier, p.Phone, p.Birth, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return record.NewStorageError("put patient", err)
	}
	return nil
}

// PutEvent inserts or fully replaces an event by primary key. Replace
// only happens on backup import; live events are never rewritten.
func (s *Store) PutEvent(ctx context.Context, ev record.Event) error {
	payload, err := marshalPayload(ev.Payload)
	if err != nil {
		return record.NewStorageError("put event", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events
		(id, patient_id, type, cid, chief, vitals, text, summary, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			patient_id = excluded.patient_id,
			type = excluded.type,
			cid = excluded.cid,
			chief = excluded.chief,
			vitals = excluded.vitals,
			text = excluded.text,
			summary = excluded.summary,
			payload = excluded.payload,
			created_at = excluded.created_at
	`,
		ev.ID, ev.PatientID, string(ev.Type), ev.CID, ev.Chief, ev.Vitals,
		ev.Text, ev.Summary, payload, ev.CreatedAt,
	)
	if err != nil {
		return record.NewStorageError("put event", err)
	}
	return nil
}

// PutSettings replaces the single settings row. Last writer wins.
func (s *Store) PutSettings(ctx context.Context, st record.Settings) error {
	value, err := marshalSettings(st)
	if err != nil {
		return record.NewStorageError("put settings", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, SettingsKey, value)
	if err != nil {
		return record.NewStorageError("put settings", err)
	}
	return nil
}

// DeletePatient removes a single patient row. Idempotent; deleting a
// missing key is not an error. Events are not touched - use
// DeletePatientCascade for the directory-level delete.
func (s *Store) DeletePatient(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id); err != nil {
		return record.NewStorageError("delete patient", err)
	}
	return nil
}

// DeleteEvent removes an event. Idempotent.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return record.NewStorageError("delete event", err)
	}
	return nil
}

// DeletePatientCascade removes every event referencing the patient and
// then the patient itself, in one transaction. SQLite gives us the
// transaction natively, so the two-phase sequence has no partial-failure
// window here. Returns the number of events removed.
func (s *Store) DeletePatientCascade(ctx context.Context, id string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, record.NewStorageError("cascade delete: begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE patient_id = ?`, id)
	if err != nil {
		return 0, record.NewStorageError("cascade delete: events", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, record.NewStorageError("cascade delete: rows affected", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id); err != nil {
		return 0, record.NewStorageError("cascade delete: patient", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, record.NewStorageError("cascade delete: commit", err)
	}
	return removed, nil
}

// Wipe deletes every record from every collection. Safe to call when
// the collections are already empty.
func (s *Store) Wipe(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return record.NewStorageError("wipe: begin tx", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM events`,
		`DELETE FROM patients`,
		`DELETE FROM settings`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return record.NewStorageError("wipe", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return record.NewStorageError("wipe: commit", err)
	}
	return nil
}

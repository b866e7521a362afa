package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/btxtech/prontuario/internal/record"
)

const patientColumns = `id, name, identifier, phone, birth, notes, created_at, updated_at`
const eventColumns = `id, patient_id, type, cid, chief, vitals, text, summary, payload, created_at`

// GetPatient retrieves a patient by id.
// Returns record.NotFoundError if absent.
func (s *Store) GetPatient(ctx context.Context, id string) (record.Patient, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+` FROM patients WHERE id = ?
	`, id)

	var p record.Patient
	err := row.Scan(&p.ID, &p.Name, &p.Identifier, &p.Phone, &p.Birth, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Patient{}, record.NewNotFoundError(collPatients, id)
	}
	if err != nil {
		return record.Patient{}, record.NewStorageError("get patient", err)
	}
	return p, nil
}

// AllPatients returns every patient. Ordered by updated_at descending,
// id ascending, so reads are deterministic.
//
// Returns an empty slice (not nil) when the collection is empty.
func (s *Store) AllPatients(ctx context.Context) ([]record.Patient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+patientColumns+` FROM patients
		ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, record.NewStorageError("query patients", err)
	}
	defer rows.Close()

	patients := []record.Patient{}
	for rows.Next() {
		var p record.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Identifier, &p.Phone, &p.Birth, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, record.NewStorageError("scan patient", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, record.NewStorageError("iterate patients", err)
	}

	return patients, nil
}

// GetEvent retrieves an event by id.
// Returns record.NotFoundError if absent.
func (s *Store) GetEvent(ctx context.Context, id string) (record.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = ?
	`, id)

	ev, err := scanEventRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Event{}, record.NewNotFoundError(collEvents, id)
	}
	if err != nil {
		return record.Event{}, record.NewStorageError("get event", err)
	}
	return ev, nil
}

// AllEvents returns every event, newest first (created_at descending,
// ties broken by id for determinism).
func (s *Store) AllEvents(ctx context.Context) ([]record.Event, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		ORDER BY created_at DESC, id ASC
	`)
}

// EventsByPatient returns every event whose patient_id equals the given
// id, newest first. The read goes against the index, never a stale
// in-memory view: it reflects all writes committed before the call.
func (s *Store) EventsByPatient(ctx context.Context, patientID string) ([]record.Event, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE patient_id = ?
		ORDER BY created_at DESC, id ASC
	`, patientID)
}

// EventsByType returns every event of the given type, newest first.
func (s *Store) EventsByType(ctx context.Context, t record.EventType) ([]record.Event, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE type = ?
		ORDER BY created_at DESC, id ASC
	`, string(t))
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]record.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, record.NewStorageError("query events", err)
	}
	defer rows.Close()

	events := []record.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, record.NewStorageError("scan event", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, record.NewStorageError("iterate events", err)
	}

	return events, nil
}

// GetSettings retrieves the single settings row.
// Returns record.NotFoundError before first initialization.
func (s *Store) GetSettings(ctx context.Context) (record.Settings, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE key = ?
	`, SettingsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Settings{}, record.NewNotFoundError(collSettings, SettingsKey)
	}
	if err != nil {
		return record.Settings{}, record.NewStorageError("get settings", err)
	}

	st, err := unmarshalSettings(value)
	if err != nil {
		return record.Settings{}, record.NewStorageError("get settings", err)
	}
	return st, nil
}

// CountPatients returns the number of patient records.
func (s *Store) CountPatients(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM patients`)
}

// CountEvents returns the number of event records.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM events`)
}

func (s *Store) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, record.NewStorageError("count", err)
	}
	return n, nil
}

func scanEvent(rows *sql.Rows) (record.Event, error) {
	var ev record.Event
	var typ, payload string

	if err := rows.Scan(
		&ev.ID, &ev.PatientID, &typ, &ev.CID, &ev.Chief, &ev.Vitals,
		&ev.Text, &ev.Summary, &payload, &ev.CreatedAt,
	); err != nil {
		return record.Event{}, fmt.Errorf("scan event: %w", err)
	}

	ev.Type = record.EventType(typ)
	p, err := unmarshalPayload(ev.Type, payload)
	if err != nil {
		return record.Event{}, err
	}
	ev.Payload = p

	return ev, nil
}

func scanEventRow(row *sql.Row) (record.Event, error) {
	var ev record.Event
	var typ, payload string

	if err := row.Scan(
		&ev.ID, &ev.PatientID, &typ, &ev.CID, &ev.Chief, &ev.Vitals,
		&ev.Text, &ev.Summary, &payload, &ev.CreatedAt,
	); err != nil {
		return record.Event{}, err
	}

	ev.Type = record.EventType(typ)
	p, err := unmarshalPayload(ev.Type, payload)
	if err != nil {
		return record.Event{}, err
	}
	ev.Payload = p

	return ev, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/btxtech/prontuario/internal/record"
)

// stateKey holds session state that must survive process restarts
// (the CLI has no long-lived tab to keep the cursor in).
const stateKey = "app_state"

// AppState is the persisted selection cursor.
type AppState struct {
	SelectedPatientID string `json:"selectedPatientId"`
}

// GetState retrieves the persisted session state. A missing row is not
// an error: it yields the zero state.
func (s *Store) GetState(ctx context.Context) (AppState, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE key = ?
	`, stateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return AppState{}, nil
	}
	if err != nil {
		return AppState{}, record.NewStorageError("get state", err)
	}

	var st AppState
	if err := json.Unmarshal([]byte(value), &st); err != nil {
		return AppState{}, record.NewStorageError("get state", err)
	}
	return st, nil
}

// PutState replaces the persisted session state.
func (s *Store) PutState(ctx context.Context, st AppState) error {
	value, err := json.Marshal(st)
	if err != nil {
		return record.NewStorageError("put state", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, stateKey, string(value))
	if err != nil {
		return record.NewStorageError("put state", err)
	}
	return nil
}

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/btxtech/prontuario/internal/record"
	"github.com/btxtech/prontuario/internal/store"
)

// Version is the snapshot format version this package reads and writes.
const Version = 1

// Snapshot is the on-disk backup document: the settings singleton plus
// every patient and event.
type Snapshot struct {
	Version    int              `json:"version"`
	ExportedAt int64            `json:"exportedAt"`
	Settings   record.Settings  `json:"settings"`
	Patients   []record.Patient `json:"patients"`
	Events     []record.Event   `json:"events"`
}

// Export reads the full store into a snapshot. Missing settings fall
// back to defaults so the file is always self-contained.
func Export(ctx context.Context, s *store.Store, clk record.Clock) (Snapshot, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		if !record.IsNotFound(err) {
			return Snapshot{}, err
		}
		settings = record.DefaultSettings()
	}
	patients, err := s.AllPatients(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	events, err := s.AllEvents(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:    Version,
		ExportedAt: clk.Now(),
		Settings:   settings,
		Patients:   patients,
		Events:     events,
	}, nil
}

// isJSONArray reports whether raw is a JSON array literal.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Decode parses and validates snapshot bytes. The shape is checked
// before the full decode so a malformed file is rejected with an
// InvalidBackupError instead of a half-populated snapshot. Settings
// fields absent from the file keep their default values.
func Decode(data []byte) (Snapshot, error) {
	var raw struct {
		Version  *int            `json:"version"`
		Patients json.RawMessage `json:"patients"`
		Events   json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, record.NewInvalidBackupError("not a JSON object")
	}
	if raw.Version == nil {
		return Snapshot{}, record.NewInvalidBackupError("missing version field")
	}
	if *raw.Version != Version {
		return Snapshot{}, record.NewInvalidBackupError(fmt.Sprintf("unsupported version %d", *raw.Version))
	}
	if !isJSONArray(raw.Patients) {
		return Snapshot{}, record.NewInvalidBackupError("patients is not an array")
	}
	if !isJSONArray(raw.Events) {
		return Snapshot{}, record.NewInvalidBackupError("events is not an array")
	}

	snap := Snapshot{Settings: record.DefaultSettings()}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, record.NewInvalidBackupError(err.Error())
	}
	for i, p := range snap.Patients {
		if p.ID == "" {
			return Snapshot{}, record.NewInvalidBackupError(fmt.Sprintf("patient %d has no id", i))
		}
	}
	for i, ev := range snap.Events {
		if ev.ID == "" {
			return Snapshot{}, record.NewInvalidBackupError(fmt.Sprintf("event %d has no id", i))
		}
		if !ev.Type.Valid() {
			return Snapshot{}, record.NewInvalidBackupError(fmt.Sprintf("event %d has unknown type %q", i, ev.Type))
		}
	}
	if snap.Patients == nil {
		snap.Patients = []record.Patient{}
	}
	if snap.Events == nil {
		snap.Events = []record.Event{}
	}
	return snap, nil
}

// Import replaces the store's contents with the snapshot: wipe first,
// then settings, patients and events in that order. Callers must have
// validated snap via Decode; Import does not re-check shape.
func Import(ctx context.Context, s *store.Store, snap Snapshot) error {
	if err := s.Wipe(ctx); err != nil {
		return err
	}
	if err := s.PutSettings(ctx, snap.Settings); err != nil {
		return err
	}
	for _, p := range snap.Patients {
		if err := s.PutPatient(ctx, p); err != nil {
			return err
		}
	}
	for _, ev := range snap.Events {
		if err := s.PutEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// FileName proposes the download name for an export taken now.
func FileName(clk record.Clock) string {
	date := time.UnixMilli(clk.Now()).UTC().Format("2006-01-02")
	return "btx_prontuario_backup_" + date + ".json"
}

// Encode renders the snapshot as indented JSON for a readable file.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile writes the snapshot to path.
func WriteFile(path string, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads and validates a snapshot from path.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	return Decode(data)
}

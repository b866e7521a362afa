package directory

import (
	"context"

	"github.com/btxtech/prontuario/internal/backup"
	"github.com/btxtech/prontuario/internal/record"
)

// ExportSnapshot captures the whole store as a backup snapshot.
func (s *Session) ExportSnapshot(ctx context.Context) (backup.Snapshot, error) {
	return backup.Export(ctx, s.store, s.clock)
}

// ImportSnapshot replaces the store with a validated snapshot. The
// gate is consulted first since the import wipes existing data. On
// success the session reloads settings, projections and the cursor.
func (s *Session) ImportSnapshot(ctx context.Context, snap backup.Snapshot, gate Gate) error {
	if gate == nil || !gate(actionImportBackup) {
		return ErrGateDenied
	}
	if err := backup.Import(ctx, s.store, snap); err != nil {
		return err
	}
	s.log.Info().
		Int("patients", len(snap.Patients)).
		Int("events", len(snap.Events)).
		Msg("backup imported")

	s.Settings = snap.Settings
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.SelectedPatientID = ""
	return s.repairCursor(ctx)
}

// WipeAll erases every record after consulting the gate. Settings are
// re-seeded with defaults so the application stays usable.
func (s *Session) WipeAll(ctx context.Context, gate Gate) error {
	if gate == nil || !gate(actionWipe) {
		return ErrGateDenied
	}
	if err := s.store.Wipe(ctx); err != nil {
		return err
	}
	s.Settings = record.DefaultSettings()
	if err := s.store.PutSettings(ctx, s.Settings); err != nil {
		return err
	}
	s.log.Info().Msg("all data wiped")
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.SelectedPatientID = ""
	return s.persistCursor(ctx)
}

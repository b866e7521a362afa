package directory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/btxtech/prontuario/internal/record"
	"github.com/btxtech/prontuario/internal/store"
)

// Session is the in-memory view of the store for one run of the
// application. Patients and Events are projections refreshed after
// every write; SelectedPatientID is the persistent cursor.
type Session struct {
	store *store.Store
	log   zerolog.Logger
	clock record.Clock

	Settings          record.Settings
	Patients          []record.Patient
	Events            []record.Event
	SelectedPatientID string
}

// NewSession wraps an open store. Call Init before anything else.
func NewSession(s *store.Store, log zerolog.Logger, clk record.Clock) *Session {
	return &Session{store: s, log: log, clock: clk}
}

// Init loads settings, projections and the persisted cursor. On first
// run it seeds the default settings. A missing or stale cursor is
// repaired to the most recently updated patient.
func (s *Session) Init(ctx context.Context) error {
	settings, err := s.store.GetSettings(ctx)
	if record.IsNotFound(err) {
		settings = record.DefaultSettings()
		if err := s.store.PutSettings(ctx, settings); err != nil {
			return err
		}
		s.log.Info().Msg("settings seeded with defaults")
	} else if err != nil {
		return err
	}
	s.Settings = settings

	if err := s.Refresh(ctx); err != nil {
		return err
	}

	state, err := s.store.GetState(ctx)
	if err != nil {
		return err
	}
	s.SelectedPatientID = state.SelectedPatientID
	return s.repairCursor(ctx)
}

// Refresh reloads the patient and event projections from the store.
func (s *Session) Refresh(ctx context.Context) error {
	patients, err := s.store.AllPatients(ctx)
	if err != nil {
		return err
	}
	events, err := s.store.AllEvents(ctx)
	if err != nil {
		return err
	}
	s.Patients = patients
	s.Events = events
	return nil
}

// Select moves the cursor to the given patient and persists it. An
// empty id clears the selection.
func (s *Session) Select(ctx context.Context, id string) error {
	if id != "" {
		if _, err := s.store.GetPatient(ctx, id); err != nil {
			return err
		}
	}
	s.SelectedPatientID = id
	return s.persistCursor(ctx)
}

// Selected returns the patient under the cursor.
func (s *Session) Selected(ctx context.Context) (record.Patient, error) {
	if s.SelectedPatientID == "" {
		return record.Patient{}, record.NewNotFoundError("patients", "")
	}
	return s.store.GetPatient(ctx, s.SelectedPatientID)
}

// repairCursor points the cursor at the first roster entry when it is
// empty or refers to a deleted patient, then persists it.
func (s *Session) repairCursor(ctx context.Context) error {
	if s.SelectedPatientID != "" {
		for _, p := range s.Patients {
			if p.ID == s.SelectedPatientID {
				return nil
			}
		}
		s.log.Debug().Str("patient", s.SelectedPatientID).Msg("cursor pointed at missing patient")
	}
	s.SelectedPatientID = ""
	if len(s.Patients) > 0 {
		s.SelectedPatientID = s.Patients[0].ID
	}
	return s.persistCursor(ctx)
}

func (s *Session) persistCursor(ctx context.Context) error {
	return s.store.PutState(ctx, store.AppState{SelectedPatientID: s.SelectedPatientID})
}

// SaveSettings persists the settings singleton and updates the
// in-memory copy.
func (s *Session) SaveSettings(ctx context.Context, st record.Settings) error {
	if err := s.store.PutSettings(ctx, st); err != nil {
		return err
	}
	s.Settings = st
	return nil
}

// PIN returns the configured access PIN, or the default when none is
// set.
func (s *Session) PIN() string {
	if s.Settings.AccessPIN != "" {
		return s.Settings.AccessPIN
	}
	return record.DefaultPIN
}

package backup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btxtech/prontuario/internal/record"
	"github.com/btxtech/prontuario/internal/store"
	"github.com/btxtech/prontuario/internal/testutil"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedStore(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.PutSettings(ctx, record.Settings{
		ProfessionalName: "Dra. Ana",
		ClinicName:       "Clínica Aurora",
		AccessPIN:        "123",
	}))
	require.NoError(t, s.PutPatient(ctx, record.Patient{
		ID: "p1", Name: "José", CreatedAt: 100, UpdatedAt: 200,
	}))
	require.NoError(t, s.PutPatient(ctx, record.Patient{
		ID: "p2", Name: "Maria", CreatedAt: 150, UpdatedAt: 150,
	}))
	require.NoError(t, s.PutEvent(ctx, record.Event{
		ID: "e1", PatientID: "p1", Type: record.TypeEvolution,
		Text: "estável", Summary: "Evolução/Anamnese", CreatedAt: 180,
	}))
	require.NoError(t, s.PutEvent(ctx, record.Event{
		ID: "e2", PatientID: "p1", Type: record.TypeRX,
		Summary: "Receita • Dipirona",
		Payload: &record.DocPayload{RX: &record.RXPayload{
			Items: []record.RXItem{{Drug: "Dipirona", Dosage: "8/8h"}},
		}},
		CreatedAt: 200,
	}))
}

func TestExport_EmptyStore(t *testing.T) {
	s := newTestStore(t)
	clk := testutil.NewDeterministicClock(5000, 1)

	snap, err := Export(context.Background(), s, clk)
	require.NoError(t, err)

	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, int64(5000), snap.ExportedAt)
	assert.Equal(t, record.DefaultSettings(), snap.Settings)
	assert.NotNil(t, snap.Patients)
	assert.Empty(t, snap.Patients)
	assert.NotNil(t, snap.Events)
	assert.Empty(t, snap.Events)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	seedStore(t, src)

	snap, err := Export(ctx, src, testutil.NewDeterministicClock(9000, 1))
	require.NoError(t, err)

	data, err := Encode(snap)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, Import(ctx, dst, decoded))

	settings, err := dst.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Clínica Aurora", settings.ClinicName)
	assert.Equal(t, "123", settings.AccessPIN)

	patients, err := dst.AllPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2)

	events, err := dst.AllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)

	rx, err := dst.GetEvent(ctx, "e2")
	require.NoError(t, err)
	require.NotNil(t, rx.Payload)
	require.NotNil(t, rx.Payload.RX)
	assert.Equal(t, "Dipirona", rx.Payload.RX.Items[0].Drug)
}

func TestImport_ReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedStore(t, s)

	snap := Snapshot{
		Version:  Version,
		Settings: record.DefaultSettings(),
		Patients: []record.Patient{{ID: "px", Name: "Novo", CreatedAt: 1, UpdatedAt: 1}},
		Events:   []record.Event{},
	}
	require.NoError(t, Import(ctx, s, snap))

	patients, err := s.AllPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "px", patients[0].ID)

	n, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDecode_Rejections(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"missing version", `{"patients":[],"events":[]}`},
		{"wrong version", `{"version":2,"patients":[],"events":[]}`},
		{"patients not array", `{"version":1,"patients":{},"events":[]}`},
		{"patients missing", `{"version":1,"events":[]}`},
		{"events not array", `{"version":1,"patients":[],"events":"x"}`},
		{"patient without id", `{"version":1,"patients":[{"name":"x"}],"events":[]}`},
		{"event without id", `{"version":1,"patients":[],"events":[{"type":"note"}]}`},
		{"event unknown type", `{"version":1,"patients":[],"events":[{"id":"e","type":"zzz"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, record.IsInvalidBackup(err), "expected InvalidBackupError, got %v", err)
		})
	}
}

func TestDecode_SettingsMergeOverDefaults(t *testing.T) {
	data := `{"version":1,"settings":{"professionalName":"Dra. Ana"},"patients":[],"events":[]}`

	snap, err := Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "Dra. Ana", snap.Settings.ProfessionalName)
	assert.Equal(t, record.DefaultSettings().ClinicName, snap.Settings.ClinicName)
	assert.Equal(t, record.DefaultSettings().ProfessionalEmail, snap.Settings.ProfessionalEmail)
}

func TestDecode_MissingSettingsFallsBackToDefaults(t *testing.T) {
	snap, err := Decode([]byte(`{"version":1,"patients":[],"events":[]}`))
	require.NoError(t, err)
	assert.Equal(t, record.DefaultSettings(), snap.Settings)
}

func TestDecode_PayloadUnionResolvedByType(t *testing.T) {
	data := `{"version":1,"patients":[],"events":[
		{"id":"e1","patientId":"p1","type":"certificate",
		 "payload":{"days":3,"start":"2024-01-10"},"createdAt":100}
	]}`

	snap, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, snap.Events, 1)
	require.NotNil(t, snap.Events[0].Payload)
	require.NotNil(t, snap.Events[0].Payload.Certificate)
	assert.Equal(t, 3, snap.Events[0].Payload.Certificate.Days)
}

func TestDecode_OrphanEventsAccepted(t *testing.T) {
	data := `{"version":1,"patients":[],"events":[
		{"id":"e1","patientId":"ghost","type":"note","summary":"s","createdAt":1}
	]}`

	snap, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Len(t, snap.Events, 1)
}

func TestFileName(t *testing.T) {
	// 2024-01-11T12:00:00Z
	clk := testutil.NewDeterministicClock(1704974400000, 1)
	assert.Equal(t, "btx_prontuario_backup_2024-01-11.json", FileName(clk))
}

func TestWriteReadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	snap := Snapshot{
		Version:    Version,
		ExportedAt: 42,
		Settings:   record.DefaultSettings(),
		Patients:   []record.Patient{{ID: "p1", Name: "José"}},
		Events:     []record.Event{},
	}

	require.NoError(t, WriteFile(path, snap))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

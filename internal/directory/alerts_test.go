package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btxtech/prontuario/internal/record"
)

func TestAlerts_EmptyTimeline(t *testing.T) {
	got := Alerts(nil, t0)
	require.Len(t, got, 1)
	assert.Equal(t, LevelWarn, got[0].Level)
	assert.Equal(t, "sem histórico", got[0].Message)
}

func TestAlerts_RecentTimelineIsQuiet(t *testing.T) {
	events := []record.Event{
		{ID: "e1", Type: record.TypeNote, CreatedAt: t0 - 10*msPerDay},
	}
	assert.Empty(t, Alerts(events, t0))
}

func TestAlerts_StaleTimeline(t *testing.T) {
	events := []record.Event{
		{ID: "e1", Type: record.TypeNote, CreatedAt: t0 - 200*msPerDay},
	}
	got := Alerts(events, t0)
	require.Len(t, got, 1)
	assert.Equal(t, LevelWarn, got[0].Level)
	assert.Equal(t, "último registro: 200d", got[0].Message)
}

func TestAlerts_ExactlyAtThresholdIsQuiet(t *testing.T) {
	events := []record.Event{
		{ID: "e1", Type: record.TypeNote, CreatedAt: t0 - 180*msPerDay},
	}
	assert.Empty(t, Alerts(events, t0))
}

func TestAlerts_LastPrescription(t *testing.T) {
	// newest first; the rx alert reports the most recent prescription
	events := []record.Event{
		{ID: "e3", Type: record.TypeNote, CreatedAt: t0 - 1*msPerDay},
		{ID: "e2", Type: record.TypeRX, CreatedAt: t0 - 2*msPerDay},
		{ID: "e1", Type: record.TypeRX, CreatedAt: t0 - 30*msPerDay},
	}
	got := Alerts(events, t0)
	require.Len(t, got, 1)
	assert.Equal(t, LevelInfo, got[0].Level)
	assert.Equal(t, "última receita: 09/01/2024", got[0].Message)
}

func TestAlerts_StaleAndPrescriptionCombine(t *testing.T) {
	events := []record.Event{
		{ID: "e1", Type: record.TypeRX, CreatedAt: t0 - 200*msPerDay},
	}
	got := Alerts(events, t0)
	require.Len(t, got, 2)
	assert.Equal(t, LevelWarn, got[0].Level)
	assert.Equal(t, LevelInfo, got[1].Level)
}

func TestPatientAlerts_UsesProjection(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)
	p := mustSavePatient(t, sess, "Ana")
	other := mustSavePatient(t, sess, "Beto")

	_, err := sess.AddClinicalEvent(ctx, other.ID, record.TypeNote, "", "", "", "x")
	require.NoError(t, err)

	got := sess.PatientAlerts(p.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "sem histórico", got[0].Message)
}

package directory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/btxtech/prontuario/internal/record"
	"github.com/btxtech/prontuario/internal/store"
	"github.com/btxtech/prontuario/internal/testutil"
)

// 2024-01-11T12:00:00Z
const t0 = int64(1704974400000)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSession(t *testing.T) (*Session, *testutil.DeterministicClock) {
	t.Helper()
	clk := testutil.NewDeterministicClock(t0, 1000)
	sess := NewSession(newTestStore(t), zerolog.Nop(), clk)
	require.NoError(t, sess.Init(context.Background()))
	return sess, clk
}

func mustSavePatient(t *testing.T, sess *Session, name string) record.Patient {
	t.Helper()
	p, err := sess.SavePatient(context.Background(), record.Patient{Name: name})
	require.NoError(t, err)
	return p
}

func allow(string) bool { return true }
func deny(string) bool  { return false }

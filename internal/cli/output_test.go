package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btxtech/prontuario/internal/record"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad path")
	assert.Equal(t, "bad path", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	wrapped := WrapExitError(ExitFailure, "import failed", errors.New("boom"))
	assert.Equal(t, "import failed: boom", wrapped.Error())
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.EqualError(t, errors.Unwrap(wrapped), "boom")
}

func TestGetExitCode_DomainErrors(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(record.NewValidationError("name", "required")))
	assert.Equal(t, ExitFailure, GetExitCode(record.NewNotFoundError("patients", "x")))
	assert.Equal(t, ExitFailure, GetExitCode(record.NewInvalidBackupError("bad")))
	assert.Equal(t, ExitCommandError, GetExitCode(record.NewStorageError("open", errors.New("locked"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("anything else")))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "validation", ErrorCode(record.NewValidationError("f", "m")))
	assert.Equal(t, "not_found", ErrorCode(record.NewNotFoundError("c", "k")))
	assert.Equal(t, "storage_unavailable", ErrorCode(record.NewStorageError("op", errors.New("x"))))
	assert.Equal(t, "invalid_backup", ErrorCode(record.NewInvalidBackupError("r")))
	assert.Equal(t, "error", ErrorCode(errors.New("x")))
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]string{"id": "p1"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error("not_found", "patient not found", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error("validation", "nome é obrigatório", nil))
	assert.Equal(t, "Error [validation]: nome é obrigatório\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out, errBuf := &bytes.Buffer{}, &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errBuf}
	quiet.VerboseLog("ignored %d", 1)
	assert.Empty(t, errBuf.String())

	verbose := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errBuf, Verbose: true}
	verbose.VerboseLog("opened %s", "db")
	assert.Equal(t, "opened db\n", errBuf.String())
	assert.Empty(t, out.String())
}

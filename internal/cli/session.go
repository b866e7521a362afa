package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/btxtech/prontuario/internal/directory"
	"github.com/btxtech/prontuario/internal/record"
	"github.com/btxtech/prontuario/internal/store"
)

// openSession opens the database and initializes a session for one
// command invocation. The returned closer must be deferred.
func openSession(cmd *cobra.Command, opts *RootOptions) (*directory.Session, func(), error) {
	if opts.Database == "" {
		return nil, nil, NewExitError(ExitCommandError, "no database path configured")
	}
	if dir := filepath.Dir(opts.Database); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	var log zerolog.Logger
	if opts.LogJSON {
		log = zerolog.New(cmd.ErrOrStderr())
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	}
	log = log.Level(level).With().Timestamp().Logger()

	sess := directory.NewSession(st, log, record.SystemClock{})
	if err := sess.Init(cmd.Context()); err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to initialize session", err)
	}
	closer := func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing database")
		}
	}
	return sess, closer, nil
}

// pinGate builds the destructive-action gate: --pin is checked when
// given, otherwise the user is prompted on stdin.
func pinGate(cmd *cobra.Command, opts *RootOptions, sess *directory.Session) directory.Gate {
	return func(action string) bool {
		supplied := opts.PIN
		if supplied == "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Digite o PIN para %s: ", action)
			reader := bufio.NewReader(cmd.InOrStdin())
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return false
			}
			supplied = strings.TrimSpace(line)
		}
		return supplied == sess.PIN()
	}
}

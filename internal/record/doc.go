// Package record defines the persistent data model for the prontuário:
// patients, clinical events and professional settings.
//
// This package contains type definitions and pure derivation rules only.
// All other internal packages import record; record imports nothing
// internal. This keeps it the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Events are immutable after creation. There is no update path,
//     only insertion and deletion (append-only medical record).
//   - Timestamps are epoch milliseconds (int64), matching the backup
//     file format.
//   - Document payloads form a tagged union keyed by EventType: exactly
//     one variant is populated per document event.
//   - All JSON tags use camelCase, matching the v1 backup format.
package record

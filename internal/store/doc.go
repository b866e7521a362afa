// Package store provides SQLite-backed durable storage for the
// prontuário collections.
//
// Three collections are persisted:
//   - patients: profile records keyed by id
//   - events: the append-only clinical log, keyed by id, with secondary
//     indexes on patient_id and type
//   - settings: a single row under a fixed key
//
// Contracts:
//   - Put fully replaces a record by primary key; there are no partial
//     updates. Each statement is atomic, so a reader never observes a
//     half-written record.
//   - Get on an absent key returns record.NotFoundError, never a bare
//     driver error.
//   - Delete is idempotent; removing a missing key is not an error.
//   - Every I/O failure surfaces as record.StorageUnavailableError so
//     callers can refuse to advance in-memory projections past an
//     unconfirmed write.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Multi-step workflows (cascade delete excepted, which runs in a native
// transaction) are not wrapped in cross-collection transactions; a
// crash mid-sequence can leave partial state. Accepted trade-off for a
// single-user offline store.
package store

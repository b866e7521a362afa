// Package backup exports and imports the whole record store as a
// single versioned JSON document. An import is a full replacement:
// the snapshot is validated before anything is touched, then the
// store is wiped and reloaded, so a rejected file never destroys
// existing data.
package backup

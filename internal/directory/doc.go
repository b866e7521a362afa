// Package directory is the application layer over the record store: a
// single-user session holding the patient roster, the event timeline,
// the settings singleton and the selected-patient cursor. All writes
// go through it so timestamps, cursor repair and the PIN gate for
// destructive actions are applied uniformly.
package directory

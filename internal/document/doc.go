// Package document renders printable artifacts from stored events.
//
// Rendering is pure: functions here never touch the store, never
// mutate their inputs and derive every timestamp from the event itself,
// so identical inputs always produce identical output. Every
// user-supplied string is HTML-escaped before it reaches the document.
//
// Timestamps are rendered in UTC with pt-BR date layouts; the device's
// local zone is a presentation concern outside this core.
package document

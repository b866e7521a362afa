package directory

import "errors"

// Gate authorizes a destructive action, typically by prompting for the
// access PIN. It receives a short pt-BR action description and reports
// whether the action may proceed.
type Gate func(action string) bool

// ErrGateDenied is returned when a Gate refuses a destructive action.
var ErrGateDenied = errors.New("ação não autorizada")

// Destructive action descriptions passed to gates.
const (
	actionDeletePatient = "excluir paciente"
	actionDeleteEvent   = "excluir evento"
	actionImportBackup  = "importar backup"
	actionWipe          = "apagar todos os dados"
)

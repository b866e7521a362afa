package record

import (
	"fmt"
	"strings"
)

// summarySep joins the parts of a derived summary.
const summarySep = " • "

// TypeLabel returns the pt-BR display label for an event type.
// Unknown types fall through to the raw value.
func TypeLabel(t EventType) string {
	switch t {
	case TypeRX:
		return "Receituário"
	case TypeCertificate:
		return "Atestado"
	case TypeBudget:
		return "Orçamento"
	case TypeReceipt:
		return "Recibo"
	case TypeEvolution:
		return "Evolução/Anamnese"
	case TypeProcedure:
		return "Procedimento"
	case TypeExam:
		return "Exame"
	case TypeNote:
		return "Observação"
	}
	return string(t)
}

// DeriveSummary builds the one-line summary of a clinical-note event:
// type label, trimmed chief complaint and "CID <code>", empty parts
// omitted.
func DeriveSummary(t EventType, chief, cid string) string {
	parts := []string{TypeLabel(t)}
	if c := strings.TrimSpace(chief); c != "" {
		parts = append(parts, c)
	}
	if c := strings.TrimSpace(cid); c != "" {
		parts = append(parts, "CID "+c)
	}
	return strings.Join(parts, summarySep)
}

// DeriveDocSummary builds the one-line summary of a document event from
// its payload. Pure function of (type, payload).
func DeriveDocSummary(t EventType, p *DocPayload) string {
	switch t {
	case TypeRX:
		first := "receita"
		n := 0
		if p != nil && p.RX != nil {
			n = len(p.RX.Items)
			if n > 0 {
				first = p.RX.Items[0].Drug
			}
		}
		if n > 1 {
			return fmt.Sprintf("Receita%s%s (+%d)", summarySep, first, n-1)
		}
		return "Receita" + summarySep + first
	case TypeCertificate:
		days := 1
		if p != nil && p.Certificate != nil && p.Certificate.Days > 0 {
			days = p.Certificate.Days
		}
		return fmt.Sprintf("Atestado%s%d dia(s)", summarySep, days)
	case TypeBudget:
		days := 7
		if p != nil && p.Budget != nil && p.Budget.Days > 0 {
			days = p.Budget.Days
		}
		return fmt.Sprintf("Orçamento%svalidade %d dia(s)", summarySep, days)
	case TypeReceipt:
		value := "valor"
		if p != nil && p.Receipt != nil && p.Receipt.Value != "" {
			value = p.Receipt.Value
		}
		return "Recibo" + summarySep + value
	}
	return TypeLabel(t)
}

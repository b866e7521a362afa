package document

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/btxtech/prontuario/internal/record"
)

const blank = "—"

// fmtDate renders epoch ms as a pt-BR date.
func fmtDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("02/01/2006")
}

// fmtDateTime renders epoch ms as a pt-BR date and time.
func fmtDateTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("02/01/2006 15:04")
}

func esc(s string) string { return html.EscapeString(s) }

// orDash substitutes the em-dash placeholder for blank values.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return blank
	}
	return s
}

const styleBlock = `<style>
body{font-family:Arial,sans-serif;margin:28px;color:#111}
.top{display:flex;justify-content:space-between;gap:16px;align-items:flex-start}
.h1{font-size:18px;font-weight:800;margin:0}
.sub{font-size:12px;color:#444;margin-top:4px}
.box{border:1px solid #ddd;border-radius:12px;padding:14px;margin-top:14px}
.line{height:1px;background:#eee;margin:14px 0}
.row{display:flex;gap:14px;flex-wrap:wrap}
.k{font-size:11px;color:#555}
.v{font-size:13px;font-weight:700}
.pre{white-space:pre-wrap;font-size:13px;line-height:1.5}
table{width:100%;border-collapse:collapse}
th,td{border-bottom:1px solid #eee;text-align:left;padding:8px 6px;font-size:13px}
th{font-size:12px;color:#444}
.sign{margin-top:18px}
.sign .l{height:1px;background:#111;width:280px;margin-top:40px}
@media print{body{margin:12mm}}
</style>`

// doc assembles the full HTML document: clinic/professional header,
// title block, then the body sections.
type doc struct {
	b strings.Builder
}

func (d *doc) line(s string) {
	d.b.WriteString(s)
	d.b.WriteByte('\n')
}

func (d *doc) linef(format string, args ...any) {
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

// sub emits a header sub-line from the non-empty parts, or nothing.
func (d *doc) sub(parts ...string) {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return
	}
	d.linef(`<div class="sub">%s</div>`, esc(strings.Join(kept, " • ")))
}

// kv emits a labeled value cell inside a .row.
func (d *doc) kv(key, value string) {
	d.linef(`<div><div class="k">%s</div><div class="v">%s</div></div>`, esc(key), esc(value))
}

func (d *doc) open(st record.Settings, title string, issuedAt int64) {
	clinic := st.ClinicName
	if strings.TrimSpace(clinic) == "" {
		clinic = "Clínica"
	}
	d.line("<!doctype html>")
	d.line(`<html lang="pt-BR">`)
	d.line("<head>")
	d.line(`<meta charset="utf-8">`)
	d.line(styleBlock)
	d.line("</head>")
	d.line("<body>")
	d.line(`<div class="top">`)
	d.line("<div>")
	d.linef(`<p class="h1">%s</p>`, esc(clinic))
	d.sub(st.ProfessionalName, st.ProfessionalReg)
	d.sub(st.ProfessionalContact, st.ProfessionalEmail)
	d.sub(st.ProfessionalAddress)
	d.line("</div>")
	d.line(`<div style="text-align:right">`)
	d.linef(`<p class="h1">%s</p>`, esc(title))
	d.linef(`<div class="sub">%s</div>`, fmtDateTime(issuedAt))
	d.line("</div>")
	d.line("</div>")
}

func (d *doc) close() {
	d.line("</body>")
	d.b.WriteString("</html>\n")
}

func (d *doc) signature() {
	d.line(`<div class="sign">`)
	d.line(`<div class="l"></div>`)
	d.line(`<div class="k">Assinatura e carimbo</div>`)
	d.line("</div>")
}

func (d *doc) patientBox(p record.Patient, ev *record.Event) {
	d.line(`<div class="box">`)
	d.line(`<div class="row">`)
	d.kv("Paciente", p.Name)
	d.kv("Identificador", orDash(p.Identifier))
	d.kv("Contato", orDash(p.Phone))
	if ev != nil {
		d.kv("Data do evento", fmtDateTime(ev.CreatedAt))
	}
	d.line("</div>")
	d.line("</div>")
}

// RenderEvent builds the printable document for one event. Pure
// function of (event, patient, settings).
func RenderEvent(ev record.Event, p record.Patient, st record.Settings) string {
	d := &doc{}
	d.open(st, record.TypeLabel(ev.Type), ev.CreatedAt)
	d.patientBox(p, &ev)

	switch ev.Type {
	case record.TypeRX:
		d.rxBody(ev)
	case record.TypeCertificate:
		d.certificateBody(ev, p)
	case record.TypeBudget:
		d.budgetBody(ev)
	case record.TypeReceipt:
		d.receiptBody(ev, p)
	default:
		d.genericBody(ev)
	}

	d.signature()
	d.close()
	return d.b.String()
}

func (d *doc) rxBody(ev record.Event) {
	var rx *record.RXPayload
	if ev.Payload != nil {
		rx = ev.Payload.RX
	}

	d.line(`<div class="box">`)
	d.line("<table>")
	d.line("<thead><tr><th>Medicamento</th><th>Posologia</th></tr></thead>")
	d.line("<tbody>")
	rows := 0
	if rx != nil {
		for _, it := range rx.Items {
			if it.Drug == "" {
				continue
			}
			d.linef("<tr><td><b>%s</b></td><td>%s</td></tr>", esc(it.Drug), esc(it.Dosage))
			rows++
		}
	}
	if rows == 0 {
		d.line(`<tr><td colspan="2">` + blank + `</td></tr>`)
	}
	d.line("</tbody>")
	d.line("</table>")
	d.line("</div>")

	if rx != nil && rx.Obs != "" {
		d.line(`<div class="box">`)
		d.line(`<div class="k">Observações</div>`)
		d.linef(`<div class="pre">%s</div>`, esc(rx.Obs))
		d.line("</div>")
	}
}

// CertificatePeriod resolves the inclusive leave window of a
// certificate payload: days (minimum one) counted from the start date,
// so the end date is start+(days-1). A missing or malformed start date
// falls back to the event date.
func CertificatePeriod(ev record.Event) (days int, start, end time.Time) {
	days = 1
	var c *record.CertificatePayload
	if ev.Payload != nil {
		c = ev.Payload.Certificate
	}
	if c != nil && c.Days > 0 {
		days = c.Days
	}

	start = time.UnixMilli(ev.CreatedAt).UTC().Truncate(24 * time.Hour)
	if c != nil && c.Start != "" {
		if t, err := time.Parse("2006-01-02", c.Start); err == nil {
			start = t
		}
	}
	end = start.AddDate(0, 0, days-1)
	return days, start, end
}

func (d *doc) certificateBody(ev record.Event, p record.Patient) {
	days, start, end := CertificatePeriod(ev)

	d.line(`<div class="box">`)
	if days > 1 {
		d.linef(`<p>Atesto para os devidos fins que <b>%s</b> necessita de afastamento por <b>%d</b> dias, a contar de <b>%s</b> até <b>%s</b>.</p>`,
			esc(p.Name), days, start.Format("02/01/2006"), end.Format("02/01/2006"))
	} else {
		d.linef(`<p>Atesto para os devidos fins que <b>%s</b> necessita de afastamento por <b>1</b> dia, a contar de <b>%s</b>.</p>`,
			esc(p.Name), start.Format("02/01/2006"))
	}
	if ev.Payload != nil && ev.Payload.Certificate != nil && strings.TrimSpace(ev.Payload.Certificate.Text) != "" {
		d.line(`<div class="line"></div>`)
		d.line(`<div class="k">Observação</div>`)
		d.linef(`<div class="pre">%s</div>`, esc(strings.TrimSpace(ev.Payload.Certificate.Text)))
	}
	d.line("</div>")
}

func (d *doc) budgetBody(ev record.Event) {
	var bu *record.BudgetPayload
	if ev.Payload != nil {
		bu = ev.Payload.Budget
	}
	text, obs := "", ""
	days := 7
	if bu != nil {
		text, obs = bu.Text, bu.Obs
		if bu.Days > 0 {
			days = bu.Days
		}
	}

	d.line(`<div class="box">`)
	d.line(`<div class="k">Descrição</div>`)
	d.linef(`<div class="pre">%s</div>`, esc(text))
	d.line(`<div class="line"></div>`)
	d.line(`<div class="row">`)
	d.kv("Validade", fmt.Sprintf("%d dia(s)", days))
	d.kv("Observações", orDash(obs))
	d.line("</div>")
	d.line("</div>")
}

func (d *doc) receiptBody(ev record.Event, p record.Patient) {
	var rc *record.ReceiptPayload
	if ev.Payload != nil {
		rc = ev.Payload.Receipt
	}
	value, ref, pay, obs := "", "", "", ""
	if rc != nil {
		value, ref, pay, obs = rc.Value, rc.For, rc.Pay, rc.Obs
	}

	d.line(`<div class="box">`)
	d.linef(`<p>Recebi de <b>%s</b> a quantia de <b>%s</b>, referente a <b>%s</b>.</p>`,
		esc(p.Name), esc(value), esc(ref))
	d.line(`<div class="line"></div>`)
	d.line(`<div class="row">`)
	d.kv("Forma de pagamento", orDash(pay))
	d.kv("Observações", orDash(obs))
	d.line("</div>")
	d.line("</div>")
}

func (d *doc) genericBody(ev record.Event) {
	d.line(`<div class="box">`)
	d.line(`<div class="k">Resumo</div>`)
	d.linef(`<div class="v">%s</div>`, esc(ev.Summary))
	d.line(`<div class="line"></div>`)
	d.line(`<div class="k">Conteúdo</div>`)
	d.linef(`<div class="pre">%s</div>`, esc(ev.Text))
	if ev.CID != "" {
		d.line(`<div class="line"></div>`)
		d.line(`<div class="k">CID</div>`)
		d.linef(`<div class="v">%s</div>`, esc(ev.CID))
	}
	if ev.Vitals != "" {
		d.line(`<div class="line"></div>`)
		d.line(`<div class="k">Sinais/Vitais</div>`)
		d.linef(`<div class="v">%s</div>`, esc(ev.Vitals))
	}
	d.line("</div>")
}

// RenderHistory builds the full-history printout for a patient: a
// most-recent-first table of every event's timestamp, type label and
// summary. Events are expected newest first; the function re-sorts
// nothing. issuedAt stamps the header.
func RenderHistory(p record.Patient, events []record.Event, st record.Settings, issuedAt int64) string {
	d := &doc{}
	d.open(st, "Histórico do paciente", issuedAt)
	d.patientBox(p, nil)

	d.line(`<div class="box">`)
	d.line(`<div class="k">Linha do tempo (resumo)</div>`)
	d.line("<table>")
	d.line("<thead><tr><th>Data/Hora</th><th>Tipo</th><th>Resumo</th></tr></thead>")
	d.line("<tbody>")
	if len(events) == 0 {
		d.line(`<tr><td colspan="3">` + blank + `</td></tr>`)
	}
	for _, ev := range events {
		d.linef("<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			fmtDateTime(ev.CreatedAt), esc(record.TypeLabel(ev.Type)), esc(ev.Summary))
	}
	d.line("</tbody>")
	d.line("</table>")
	d.line("</div>")

	d.close()
	return d.b.String()
}

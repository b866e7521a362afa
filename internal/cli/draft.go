package cli

import (
	"gopkg.in/yaml.v3"

	"github.com/btxtech/prontuario/internal/record"
)

// docDraft is the YAML shape accepted by "event add-doc". Exactly one
// payload section must be present and it must match the declared type.
type docDraft struct {
	Type  string `yaml:"type"`
	Title string `yaml:"title"`

	RX *struct {
		Items []struct {
			Drug string `yaml:"drug"`
			Pos  string `yaml:"pos"`
		} `yaml:"items"`
		Obs string `yaml:"obs"`
	} `yaml:"rx"`

	Certificate *struct {
		Days  int    `yaml:"days"`
		Start string `yaml:"start"`
		Text  string `yaml:"text"`
	} `yaml:"certificate"`

	Budget *struct {
		Text string `yaml:"text"`
		Days int    `yaml:"days"`
		Obs  string `yaml:"obs"`
	} `yaml:"budget"`

	Receipt *struct {
		Value string `yaml:"value"`
		For   string `yaml:"for"`
		Pay   string `yaml:"pay"`
		Obs   string `yaml:"obs"`
	} `yaml:"receipt"`
}

// parseDocDraft decodes a YAML document draft into an event payload.
func parseDocDraft(data []byte) (record.EventType, string, *record.DocPayload, error) {
	var draft docDraft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return "", "", nil, WrapExitError(ExitCommandError, "failed to parse draft", err)
	}

	t := record.EventType(draft.Type)
	if !t.Documental() {
		return "", "", nil, record.NewValidationError("type", "draft type must be rx, certificate, budget or receipt")
	}

	payload := &record.DocPayload{}
	switch t {
	case record.TypeRX:
		if draft.RX == nil {
			return "", "", nil, record.NewValidationError("rx", "draft is missing the rx section")
		}
		rx := &record.RXPayload{Obs: draft.RX.Obs}
		for _, it := range draft.RX.Items {
			rx.Items = append(rx.Items, record.RXItem{Drug: it.Drug, Dosage: it.Pos})
		}
		payload.RX = rx
	case record.TypeCertificate:
		if draft.Certificate == nil {
			return "", "", nil, record.NewValidationError("certificate", "draft is missing the certificate section")
		}
		payload.Certificate = &record.CertificatePayload{
			Days:  draft.Certificate.Days,
			Start: draft.Certificate.Start,
			Text:  draft.Certificate.Text,
		}
	case record.TypeBudget:
		if draft.Budget == nil {
			return "", "", nil, record.NewValidationError("budget", "draft is missing the budget section")
		}
		payload.Budget = &record.BudgetPayload{
			Text: draft.Budget.Text,
			Days: draft.Budget.Days,
			Obs:  draft.Budget.Obs,
		}
	case record.TypeReceipt:
		if draft.Receipt == nil {
			return "", "", nil, record.NewValidationError("receipt", "draft is missing the receipt section")
		}
		payload.Receipt = &record.ReceiptPayload{
			Value: draft.Receipt.Value,
			For:   draft.Receipt.For,
			Pay:   draft.Receipt.Pay,
			Obs:   draft.Receipt.Obs,
		}
	}
	return t, draft.Title, payload, nil
}

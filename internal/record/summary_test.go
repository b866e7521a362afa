package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSummary_ChiefOnly(t *testing.T) {
	got := DeriveSummary(TypeEvolution, "dor de cabeça", "")

	assert.Contains(t, got, "Evolução/Anamnese")
	assert.Contains(t, got, "dor de cabeça")
	assert.NotContains(t, got, "CID")
}

func TestDeriveSummary_WithCID(t *testing.T) {
	got := DeriveSummary(TypeEvolution, "dor de cabeça", "R51")

	assert.Contains(t, got, "CID R51")
}

func TestDeriveSummary_TrimsParts(t *testing.T) {
	got := DeriveSummary(TypeNote, "  retorno  ", "  ")

	assert.Equal(t, "Observação • retorno", got)
}

func TestDeriveSummary_LabelOnly(t *testing.T) {
	got := DeriveSummary(TypeExam, "", "")

	assert.Equal(t, "Exame", got)
	assert.False(t, strings.Contains(got, "•"))
}

func TestDeriveDocSummary_RX(t *testing.T) {
	tests := []struct {
		name    string
		payload *DocPayload
		want    string
	}{
		{
			name:    "single drug",
			payload: &DocPayload{RX: &RXPayload{Items: []RXItem{{Drug: "Amoxicilina"}}}},
			want:    "Receita • Amoxicilina",
		},
		{
			name: "multiple drugs get a suffix",
			payload: &DocPayload{RX: &RXPayload{Items: []RXItem{
				{Drug: "Amoxicilina"}, {Drug: "Dipirona"}, {Drug: "Omeprazol"},
			}}},
			want: "Receita • Amoxicilina (+2)",
		},
		{
			name:    "empty payload falls back",
			payload: &DocPayload{RX: &RXPayload{}},
			want:    "Receita • receita",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveDocSummary(TypeRX, tt.payload))
		})
	}
}

func TestDeriveDocSummary_Certificate(t *testing.T) {
	p := &DocPayload{Certificate: &CertificatePayload{Days: 3, Start: "2024-01-10"}}
	assert.Equal(t, "Atestado • 3 dia(s)", DeriveDocSummary(TypeCertificate, p))

	// zero days defaults to one
	empty := &DocPayload{Certificate: &CertificatePayload{}}
	assert.Equal(t, "Atestado • 1 dia(s)", DeriveDocSummary(TypeCertificate, empty))
}

func TestDeriveDocSummary_Budget(t *testing.T) {
	p := &DocPayload{Budget: &BudgetPayload{Days: 15}}
	assert.Equal(t, "Orçamento • validade 15 dia(s)", DeriveDocSummary(TypeBudget, p))
}

func TestDeriveDocSummary_Receipt(t *testing.T) {
	p := &DocPayload{Receipt: &ReceiptPayload{Value: "R$ 200,00"}}
	assert.Equal(t, "Recibo • R$ 200,00", DeriveDocSummary(TypeReceipt, p))
}

func TestDeriveDocSummary_NonDocumentalFallsBackToLabel(t *testing.T) {
	assert.Equal(t, "Procedimento", DeriveDocSummary(TypeProcedure, nil))
}

func TestTypeLabel_UnknownTypePassesThrough(t *testing.T) {
	assert.Equal(t, "weird", TypeLabel(EventType("weird")))
}

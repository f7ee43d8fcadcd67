package fechamento

import (
	"time"
)

// Tipo de conclusão declarada pelo corretor.
const (
	TipoVenda   = "SOLD"
	TipoAluguel = "RENTED"
)

// Modalidade de comissão do fechamento.
const (
	ModalidadePercentual = "PERCENT"
	ModalidadeValor      = "AMOUNT"
)

// TipoValido informa se o tipo de fechamento é conhecido.
func TipoValido(t string) bool {
	return t == TipoVenda || t == TipoAluguel
}

// ModalidadeValida informa se a modalidade de comissão é conhecida.
func ModalidadeValida(m string) bool {
	return m == ModalidadePercentual || m == ModalidadeValor
}

// Fechamento é a declaração do corretor de que o negócio foi concluído
// (venda ou aluguel), junto com a proposta de rateio de comissão. Finalizado
// por exatamente uma ação administrativa: aprovação ou marcação sem comissão.
type Fechamento struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	NegociacaoID uint   `gorm:"not null;index" json:"negociacaoId"`
	Tipo         string `gorm:"size:20;not null" json:"tipo"`
	Modalidade   string `gorm:"size:20;not null" json:"modalidade"`

	// Total da comissão conforme a modalidade.
	TotalPercentual *float64 `json:"totalPercentual,omitempty"`
	TotalValor      *float64 `json:"totalValor,omitempty"`

	ComprovantePagamentoURL string `gorm:"size:512" json:"comprovantePagamentoUrl"`
	SubmetidoPorID          uint   `gorm:"not null" json:"submetidoPorId"`

	AprovadoPorAdminID *uint      `json:"aprovadoPorAdminId,omitempty"`
	AprovadoEm         *time.Time `json:"aprovadoEm,omitempty"`
	MotivoSemComissao  *string    `gorm:"size:1000" json:"motivoSemComissao,omitempty"`
}

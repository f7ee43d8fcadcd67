// internal/rateio/model.go
package rateio

import (
	"time"
)

// Papéis que recebem parte da comissão. Cada fechamento precisa de exatamente
// um rateio por papel.
const (
	PapelCaptador         = "CAPTADOR"
	PapelPlataforma       = "PLATFORM"
	PapelCorretorVendedor = "SELLER_BROKER"
)

// PapelRecebedorValido informa se o papel pertence ao conjunto exigido.
func PapelRecebedorValido(p string) bool {
	switch p {
	case PapelCaptador, PapelPlataforma, PapelCorretorVendedor:
		return true
	}
	return false
}

// PapeisObrigatorios lista os papéis exigidos em todo fechamento.
func PapeisObrigatorios() []string {
	return []string{PapelCaptador, PapelPlataforma, PapelCorretorVendedor}
}

// Rateio é a fatia de um papel na comissão de um fechamento. Substituído por
// completo (delete + insert) a cada novo fechamento; nunca editado parcialmente.
type Rateio struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FechamentoID  uint    `gorm:"not null;index" json:"fechamentoId"`
	PapelRecebedor string  `gorm:"size:30;not null" json:"papelRecebedor"`
	// RecebedorID é opcional; a PLATFORM não tem usuário recebedor.
	RecebedorID *uint `json:"recebedorId,omitempty"`

	// Preenchido conforme a modalidade do fechamento pai.
	ValorPercentual *float64 `json:"valorPercentual,omitempty"`
	ValorMonetario  *float64 `json:"valorMonetario,omitempty"`
}

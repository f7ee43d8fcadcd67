package contrato

import (
	"time"
)

// Contrato é um artefato de contrato publicado para uma negociação.
// Append-only: nunca é alterado após a criação; o vigente é o de maior versão.
type Contrato struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	NegociacaoID uint `gorm:"not null;index:idx_contratos_neg_versao,unique" json:"negociacaoId"`
	// Versao é monotônica por negociação, começando em 1.
	Versao           int    `gorm:"not null;index:idx_contratos_neg_versao,unique" json:"versao"`
	URL              string `gorm:"size:512;not null" json:"url"`
	PublicadoPorAdminID uint `gorm:"not null" json:"publicadoPorAdminId"`
}

package documento

import (
	"time"
)

// Status de revisão de um documento da negociação.
const (
	StatusPendenteRevisao     = "PENDING_REVIEW"
	StatusAprovado            = "APPROVED"
	StatusAprovadoComRessalva = "APPROVED_WITH_REMARKS"
	StatusRejeitado           = "REJECTED"
)

// StatusRevisaoValido informa se o status pertence ao conjunto aceito em uma
// revisão administrativa.
func StatusRevisaoValido(s string) bool {
	switch s {
	case StatusAprovado, StatusAprovadoComRessalva, StatusRejeitado:
		return true
	}
	return false
}

// Documento é um documento anexado a uma negociação, com revisão
// administrativa independente. Imutável após a criação, exceto os campos de
// revisão.
type Documento struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	NegociacaoID uint   `gorm:"not null;index" json:"negociacaoId"`
	Nome         string `gorm:"size:255;not null" json:"nome"`
	URL          string `gorm:"size:512;not null" json:"url"`

	Status             string     `gorm:"size:50;not null;default:'PENDING_REVIEW';index" json:"status"`
	ComentarioRevisao  *string    `gorm:"size:1000" json:"comentarioRevisao,omitempty"`
	EnviadoPorID       uint       `gorm:"not null" json:"enviadoPorId"`
	RevisadoPorAdminID *uint      `json:"revisadoPorAdminId,omitempty"`
	RevisadoEm         *time.Time `json:"revisadoEm,omitempty"`
}

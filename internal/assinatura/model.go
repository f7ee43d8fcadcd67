package assinatura

import (
	"time"
)

// Papel de quem assinou o documento.
const (
	PapelCaptador         = "CAPTADOR"
	PapelCorretorVendedor = "SELLER_BROKER"
	PapelCliente          = "CLIENT"
)

// Status de validação administrativa da assinatura.
const (
	StatusPendente  = "PENDING"
	StatusAprovada  = "APPROVED"
	StatusRejeitada = "REJECTED"
)

// PapelAssinanteValido informa se o papel do assinante é conhecido.
func PapelAssinanteValido(p string) bool {
	switch p {
	case PapelCaptador, PapelCorretorVendedor, PapelCliente:
		return true
	}
	return false
}

// StatusValidacaoValido informa se o status pertence ao conjunto aceito na
// validação administrativa.
func StatusValidacaoValido(s string) bool {
	switch s {
	case StatusAprovada, StatusRejeitada:
		return true
	}
	return false
}

// Assinatura é o envio de um documento assinado em uma negociação.
// Criada por um corretor; validada por um admin (revalidação sobrescreve).
type Assinatura struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	NegociacaoID  uint   `gorm:"not null;index" json:"negociacaoId"`
	PapelAssinante string `gorm:"size:30;not null" json:"papelAssinante"`
	ArquivoURL    string `gorm:"size:512;not null" json:"arquivoUrl"`
	ProvaImagemURL *string `gorm:"size:512" json:"provaImagemUrl,omitempty"`
	AssinadoPorID *uint  `json:"assinadoPorId,omitempty"`
	EnviadoPorID  uint   `gorm:"not null" json:"enviadoPorId"`

	StatusValidacao     string     `gorm:"size:30;not null;default:'PENDING';index" json:"statusValidacao"`
	ComentarioValidacao *string    `gorm:"size:1000" json:"comentarioValidacao,omitempty"`
	ValidadoPorAdminID  *uint      `json:"validadoPorAdminId,omitempty"`
	ValidadoEm          *time.Time `json:"validadoEm,omitempty"`
}

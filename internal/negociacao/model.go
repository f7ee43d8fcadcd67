package negociacao

import (
	"time"

	"github.com/CasaLink/api-negociacao/internal/assinatura"
	"github.com/CasaLink/api-negociacao/internal/contrato"
	"github.com/CasaLink/api-negociacao/internal/documento"
	"github.com/CasaLink/api-negociacao/internal/fechamento"
	"gorm.io/gorm"
)

// Negociacao representa uma tentativa de negócio sobre um imóvel entre o
// corretor captador e o corretor vendedor. Uma linha por (imóvel, tentativa);
// nunca apagada fisicamente — estados finais são terminais.
type Negociacao struct {
	ID        uint           `gorm:"primaryKey" json:"negociacaoId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ImovelID           uint `gorm:"not null;index" json:"imovelId"`
	CaptadorID         uint `gorm:"not null;index" json:"captadorId"`
	CorretorVendedorID uint `gorm:"not null;index" json:"corretorVendedorId"`

	Status Status `gorm:"size:50;not null;default:'DRAFT';index" json:"status"`

	// Ativa: no máximo uma negociação ativa por imóvel, garantida com lock de
	// linha na ativação.
	Ativa bool `gorm:"not null;default:false;index" json:"ativa"`

	IniciadaEm        *time.Time `json:"iniciadaEm,omitempty"`
	ExpiraEm          *time.Time `json:"expiraEm,omitempty"`
	UltimaAtividadeEm *time.Time `json:"ultimaAtividadeEm,omitempty"`

	CriadoPorID uint `gorm:"not null" json:"criadoPorId"`

	Documentos  []documento.Documento   `gorm:"foreignKey:NegociacaoID;constraint:OnDelete:CASCADE" json:"documentos,omitempty"`
	Contratos   []contrato.Contrato     `gorm:"foreignKey:NegociacaoID;constraint:OnDelete:CASCADE" json:"contratos,omitempty"`
	Assinaturas []assinatura.Assinatura `gorm:"foreignKey:NegociacaoID;constraint:OnDelete:CASCADE" json:"assinaturas,omitempty"`
	Fechamentos []fechamento.Fechamento `gorm:"foreignKey:NegociacaoID;constraint:OnDelete:CASCADE" json:"fechamentos,omitempty"`
}

// Participante informa se o usuário é captador, vendedor ou criador da
// negociação — os únicos corretores autorizados a agir sobre ela.
func (n *Negociacao) Participante(userID uint) bool {
	return n.CaptadorID == userID || n.CorretorVendedorID == userID || n.CriadoPorID == userID
}

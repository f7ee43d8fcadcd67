package imovel

import (
	"time"

	"gorm.io/gorm"
)

// Status de ciclo de vida do imóvel no anúncio.
const (
	CicloDisponivel = "AVAILABLE"
	CicloVendido    = "SOLD"
	CicloAlugado    = "RENTED"
)

// Imovel representa um imóvel anunciado na plataforma.
type Imovel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Titulo     string  `gorm:"size:255;not null" json:"titulo"`
	Endereco   string  `gorm:"size:255" json:"endereco"`
	Cidade     string  `gorm:"size:100" json:"cidade"`
	UF         string  `gorm:"size:2" json:"uf"`
	CEP        string  `gorm:"size:10" json:"cep"`
	Preco      float64 `gorm:"not null;default:0" json:"preco"`
	CaptadorID uint    `gorm:"index" json:"captadorId"`

	// Visivel controla a exibição na vitrine pública; negociação ativa oculta
	// o imóvel.
	Visivel    bool   `gorm:"not null;default:true" json:"visivel"`
	StatusCiclo string `gorm:"size:20;not null;default:'AVAILABLE'" json:"statusCiclo"`
}

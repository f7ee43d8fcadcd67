package corretor

import (
	"time"

	"gorm.io/gorm"
)

// Corretor representa um usuário do sistema: corretor captador, corretor
// vendedor ou administrador da plataforma.
type Corretor struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome      string `gorm:"size:100;not null" json:"nome"`
	Sobrenome string `gorm:"size:100" json:"sobrenome"`
	CRECI     string `gorm:"size:20;uniqueIndex" json:"creci"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Telefone  string `gorm:"size:20" json:"telefone"`
	Foto      string `gorm:"size:255" json:"foto"`
	Senha     string `gorm:"size:255;not null" json:"-"`

	IsAdmin bool `gorm:"default:false" json:"isAdmin"`
	// Aprovado indica que o cadastro do corretor passou pela validação da
	// plataforma; só corretores aprovados participam de negociações.
	Aprovado bool `gorm:"default:false;index" json:"aprovado"`
}

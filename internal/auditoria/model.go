package auditoria

import (
	"time"
)

// RegistroAuditoria é um lançamento imutável da trilha de auditoria: quem fez
// o quê em qual entidade. Escrito uma vez por mutação bem-sucedida; nunca lido
// nem compactado pelo motor.
type Registro struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	AtorID     uint   `gorm:"not null;index" json:"atorId"`
	Entidade   string `gorm:"size:50;not null;index" json:"entidade"`
	EntidadeID uint   `gorm:"not null;index" json:"entidadeId"`
	Acao       string `gorm:"size:80;not null" json:"acao"`

	// Metadados descreve os valores antes/depois relevantes à transição.
	Metadados map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"metadados"`
}

// TableName fixa o nome da tabela da trilha.
func (Registro) TableName() string { return "registros_auditoria" }

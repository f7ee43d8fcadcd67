package assinatura

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, a *Assinatura) error
	BuscarPorIDENegociacao(db *gorm.DB, id, negociacaoID uint) (*Assinatura, error)
	ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Assinatura, error)
	AtualizarValidacao(db *gorm.DB, id uint, status string, comentario *string, adminID uint, quando time.Time) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Assinatura) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) BuscarPorIDENegociacao(db *gorm.DB, id, negociacaoID uint) (*Assinatura, error) {
	var a Assinatura
	err := db.Where("id = ? AND negociacao_id = ?", id, negociacaoID).First(&a).Error
	return &a, err
}

func (r *repositoryImpl) ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Assinatura, error) {
	var list []Assinatura
	err := db.Where("negociacao_id = ?", negociacaoID).Order("id").Find(&list).Error
	return list, err
}

// AtualizarValidacao grava o resultado da validação; chamadas subsequentes
// sobrescrevem a anterior.
func (r *repositoryImpl) AtualizarValidacao(db *gorm.DB, id uint, status string, comentario *string, adminID uint, quando time.Time) error {
	return db.Model(&Assinatura{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status_validacao":      status,
		"comentario_validacao":  comentario,
		"validado_por_admin_id": adminID,
		"validado_em":           quando,
	}).Error
}

package documento

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, d *Documento) error
	BuscarPorIDENegociacao(db *gorm.DB, id, negociacaoID uint) (*Documento, error)
	ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Documento, error)
	AtualizarRevisao(db *gorm.DB, id uint, status string, comentario *string, adminID uint, quando time.Time) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, d *Documento) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) BuscarPorIDENegociacao(db *gorm.DB, id, negociacaoID uint) (*Documento, error) {
	var d Documento
	err := db.Where("id = ? AND negociacao_id = ?", id, negociacaoID).First(&d).Error
	return &d, err
}

func (r *repositoryImpl) ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Documento, error) {
	var list []Documento
	err := db.Where("negociacao_id = ?", negociacaoID).Order("id").Find(&list).Error
	return list, err
}

// AtualizarRevisao grava apenas os campos de revisão; o restante do documento
// permanece imutável.
func (r *repositoryImpl) AtualizarRevisao(db *gorm.DB, id uint, status string, comentario *string, adminID uint, quando time.Time) error {
	return db.Model(&Documento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":                status,
		"comentario_revisao":    comentario,
		"revisado_por_admin_id": adminID,
		"revisado_em":           quando,
	}).Error
}

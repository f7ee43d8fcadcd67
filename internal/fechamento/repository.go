package fechamento

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, f *Fechamento) error
	BuscarUltimoPorNegociacao(db *gorm.DB, negociacaoID uint) (*Fechamento, error)
	ListarIDsPorNegociacao(db *gorm.DB, negociacaoID uint) ([]uint, error)
	Aprovar(db *gorm.DB, id, adminID uint, quando time.Time) error
	MarcarSemComissao(db *gorm.DB, id, adminID uint, motivo string, quando time.Time) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, f *Fechamento) error {
	return db.Create(f).Error
}

// BuscarUltimoPorNegociacao devolve o fechamento vigente: o mais recente por
// created_at (desempate por id).
func (r *repositoryImpl) BuscarUltimoPorNegociacao(db *gorm.DB, negociacaoID uint) (*Fechamento, error) {
	var f Fechamento
	err := db.Where("negociacao_id = ?", negociacaoID).
		Order("created_at DESC, id DESC").
		First(&f).Error
	return &f, err
}

func (r *repositoryImpl) ListarIDsPorNegociacao(db *gorm.DB, negociacaoID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&Fechamento{}).
		Where("negociacao_id = ?", negociacaoID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repositoryImpl) Aprovar(db *gorm.DB, id, adminID uint, quando time.Time) error {
	return db.Model(&Fechamento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"aprovado_por_admin_id": adminID,
		"aprovado_em":           quando,
	}).Error
}

func (r *repositoryImpl) MarcarSemComissao(db *gorm.DB, id, adminID uint, motivo string, quando time.Time) error {
	return db.Model(&Fechamento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"aprovado_por_admin_id": adminID,
		"aprovado_em":           quando,
		"motivo_sem_comissao":   motivo,
	}).Error
}

package contrato

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	ProximaVersao(db *gorm.DB, negociacaoID uint) (int, error)
	BuscarUltimaPorNegociacao(db *gorm.DB, negociacaoID uint) (*Contrato, error)
	ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Contrato, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

// ProximaVersao devolve max(versao)+1 para a negociação (1 quando não há contrato).
func (r *repositoryImpl) ProximaVersao(db *gorm.DB, negociacaoID uint) (int, error) {
	var max int
	err := db.Model(&Contrato{}).
		Where("negociacao_id = ?", negociacaoID).
		Select("COALESCE(MAX(versao), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *repositoryImpl) BuscarUltimaPorNegociacao(db *gorm.DB, negociacaoID uint) (*Contrato, error) {
	var c Contrato
	err := db.Where("negociacao_id = ?", negociacaoID).Order("versao DESC").First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Contrato, error) {
	var list []Contrato
	err := db.Where("negociacao_id = ?", negociacaoID).Order("versao").Find(&list).Error
	return list, err
}

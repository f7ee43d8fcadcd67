package rateio

import "gorm.io/gorm"

type Repository interface {
	CriarLote(db *gorm.DB, itens []Rateio) error
	ListarPorFechamento(db *gorm.DB, fechamentoID uint) ([]Rateio, error)
	DeletarPorFechamentos(db *gorm.DB, fechamentoIDs []uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) CriarLote(db *gorm.DB, itens []Rateio) error {
	if len(itens) == 0 {
		return nil
	}
	return db.Create(&itens).Error
}

func (r *repositoryImpl) ListarPorFechamento(db *gorm.DB, fechamentoID uint) ([]Rateio, error) {
	var list []Rateio
	err := db.Where("fechamento_id = ?", fechamentoID).Order("id").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) DeletarPorFechamentos(db *gorm.DB, fechamentoIDs []uint) error {
	if len(fechamentoIDs) == 0 {
		return nil
	}
	return db.Where("fechamento_id IN ?", fechamentoIDs).Delete(&Rateio{}).Error
}

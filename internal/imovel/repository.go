package imovel

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, i *Imovel) error
	BuscarPorID(db *gorm.DB, id uint) (*Imovel, error)
	ListarVisiveis(db *gorm.DB) ([]Imovel, error)
	DefinirVisibilidade(db *gorm.DB, id uint, visivel bool) error
	DefinirStatusCiclo(db *gorm.DB, id uint, status string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, i *Imovel) error {
	return db.Create(i).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Imovel, error) {
	var i Imovel
	err := db.First(&i, id).Error
	return &i, err
}

func (r *repositoryImpl) ListarVisiveis(db *gorm.DB) ([]Imovel, error) {
	var list []Imovel
	err := db.Where("visivel = ?", true).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) DefinirVisibilidade(db *gorm.DB, id uint, visivel bool) error {
	return db.Model(&Imovel{}).Where("id = ?", id).Update("visivel", visivel).Error
}

func (r *repositoryImpl) DefinirStatusCiclo(db *gorm.DB, id uint, status string) error {
	return db.Model(&Imovel{}).Where("id = ?", id).Update("status_ciclo", status).Error
}

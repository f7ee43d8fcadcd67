package auditoria

import "gorm.io/gorm"

type Repository interface {
	Registrar(db *gorm.DB, r *Registro) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Registrar insere um lançamento na trilha. Append-only.
func (r *repositoryImpl) Registrar(db *gorm.DB, reg *Registro) error {
	return db.Create(reg).Error
}

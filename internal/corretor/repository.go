package corretor

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Corretor) error
	BuscarPorID(db *gorm.DB, id uint) (*Corretor, error)
	BuscarPorEmailOuCRECI(db *gorm.DB, login string) (*Corretor, error)
	ListarTodos(db *gorm.DB) ([]Corretor, error)
	Atualizar(db *gorm.DB, c *Corretor) error
	EhCorretorAprovado(db *gorm.DB, id uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Corretor) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Corretor, error) {
	var c Corretor
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorEmailOuCRECI(db *gorm.DB, login string) (*Corretor, error) {
	var c Corretor
	err := db.Where("email = ? OR creci = ?", login, login).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Corretor, error) {
	var list []Corretor
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Corretor) error {
	return db.Save(c).Error
}

// EhCorretorAprovado responde se o usuário existe e está aprovado na plataforma.
func (r *repositoryImpl) EhCorretorAprovado(db *gorm.DB, id uint) (bool, error) {
	var c Corretor
	if err := db.Select("id", "aprovado").First(&c, id).Error; err != nil {
		return false, err
	}
	return c.Aprovado, nil
}

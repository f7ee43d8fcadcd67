package negociacao

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Salvar(db *gorm.DB, n *Negociacao) error
	BuscarPorID(db *gorm.DB, id uint) (*Negociacao, error)
	ListarPorImovel(db *gorm.DB, imovelID uint) ([]Negociacao, error)
	AtualizarStatus(db *gorm.DB, id uint, status Status) error
	RegistrarAtividade(db *gorm.DB, id uint, quando time.Time) error
	BuscarAtivasPorImovelComLock(db *gorm.DB, imovelID uint) ([]Negociacao, error)
	Ativar(db *gorm.DB, id uint, iniciadaEm, expiraEm time.Time) error
	Encerrar(db *gorm.DB, id uint, status Status, quando time.Time) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, n *Negociacao) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Negociacao, error) {
	var n Negociacao
	err := db.First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) ListarPorImovel(db *gorm.DB, imovelID uint) ([]Negociacao, error) {
	var list []Negociacao
	err := db.Where("imovel_id = ?", imovelID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, status Status) error {
	return db.Model(&Negociacao{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repositoryImpl) RegistrarAtividade(db *gorm.DB, id uint, quando time.Time) error {
	return db.Model(&Negociacao{}).Where("id = ?", id).
		Update("ultima_atividade_em", quando).Error
}

// BuscarAtivasPorImovelComLock carrega as negociações ativas do imóvel com
// SELECT ... FOR UPDATE, fechando a corrida entre duas ativações concorrentes.
// SQLite não aceita FOR UPDATE; lá os escritores já são serializados.
func (r *repositoryImpl) BuscarAtivasPorImovelComLock(db *gorm.DB, imovelID uint) ([]Negociacao, error) {
	q := db.Where("imovel_id = ? AND ativa = ?", imovelID, true)
	if db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var list []Negociacao
	err := q.Find(&list).Error
	return list, err
}

// Ativar marca a negociação como ativa, em revisão de documentos, e grava os
// prazos de SLA.
func (r *repositoryImpl) Ativar(db *gorm.DB, id uint, iniciadaEm, expiraEm time.Time) error {
	return db.Model(&Negociacao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":              StatusDocsEmRevisao,
		"ativa":               true,
		"iniciada_em":         iniciadaEm,
		"expira_em":           expiraEm,
		"ultima_atividade_em": iniciadaEm,
	}).Error
}

// Encerrar grava um status terminal e libera a flag de ativa para que o imóvel
// possa receber nova tentativa no futuro.
func (r *repositoryImpl) Encerrar(db *gorm.DB, id uint, status Status, quando time.Time) error {
	return db.Model(&Negociacao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":              status,
		"ativa":               false,
		"ultima_atividade_em": quando,
	}).Error
}

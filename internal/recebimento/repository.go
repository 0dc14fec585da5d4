package recebimento

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filtro da listagem; campos zerados não filtram.
type Filtro struct {
	VendaID uint
	Status  string
}

type Repository interface {
	Listar(db *gorm.DB, f Filtro) ([]ControleDeRecebimento, error)
	BuscarPorID(db *gorm.DB, id uint) (*ControleDeRecebimento, error)
	ReferenciasExistem(db *gorm.DB, vendaID, parcelaID uint) (venda bool, parcela bool, err error)
	Salvar(db *gorm.DB, c *ControleDeRecebimento) error
	Atualizar(db *gorm.DB, id uint, colunas map[string]any) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]ControleDeRecebimento, error) {
	q := db.Preload("Parcela").Order("venda_id, data_prevista_recebimento, id")
	if f.VendaID != 0 {
		q = q.Where("venda_id = ?", f.VendaID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var lista []ControleDeRecebimento
	if err := q.Find(&lista).Error; err != nil {
		return nil, fmt.Errorf("listar recebimentos: %w", err)
	}
	return lista, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*ControleDeRecebimento, error) {
	var c ControleDeRecebimento
	if err := db.Preload("Parcela").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ReferenciasExistem(db *gorm.DB, vendaID, parcelaID uint) (bool, bool, error) {
	var nv, np int64
	if err := db.Table("vendas").Where("id = ?", vendaID).Count(&nv).Error; err != nil {
		return false, false, err
	}
	if err := db.Table("parcelas").Where("id = ?", parcelaID).Count(&np).Error; err != nil {
		return false, false, err
	}
	return nv > 0, np > 0, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *ControleDeRecebimento) error {
	return db.Omit(clause.Associations).Save(c).Error
}

// Atualizar grava só as colunas informadas (PATCH).
func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, colunas map[string]any) error {
	if len(colunas) == 0 {
		return nil
	}
	res := db.Model(&ControleDeRecebimento{}).Where("id = ?", id).Updates(colunas)
	if res.Error != nil {
		return fmt.Errorf("atualizar recebimento %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&ControleDeRecebimento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package plano

import (
	"errors"

	"gorm.io/gorm"
)

var ErrPlanoDuplicado = errors.New("plano duplicado para operadora e tipo")

type Repository interface {
	Listar(db *gorm.DB) ([]Plano, error)
	BuscarPorID(db *gorm.DB, id uint) (*Plano, error)
	Salvar(db *gorm.DB, p *Plano) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Plano, error) {
	var planos []Plano
	err := db.Order("id").Find(&planos).Error
	return planos, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Plano, error) {
	var p Plano
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Salvar confere a unicidade (operadora, tipo) antes de gravar.
func (r *repositoryImpl) Salvar(db *gorm.DB, p *Plano) error {
	var n int64
	err := db.Model(&Plano{}).
		Where("operadora = ? AND tipo = ? AND id <> ?", p.Operadora, p.Tipo, p.ID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrPlanoDuplicado
	}
	return db.Save(p).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Plano{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package venda

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/corretora/sistema-comissoes/internal/parcela"
	"github.com/corretora/sistema-comissoes/internal/plano"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

type Repository interface {
	Listar(db *gorm.DB) ([]Venda, error)
	BuscarPorID(db *gorm.DB, id uint) (*Venda, error)
	BuscarPlano(db *gorm.DB, id uint) (*plano.Plano, error)
	ReferenciasExistem(db *gorm.DB, clienteID, consultorID uint) (cliente bool, consultor bool, err error)
	PropostaEmUso(db *gorm.DB, numero string, exceto uint) (bool, error)
	Salvar(db *gorm.DB, v *Venda) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func comRelacoes(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Cliente").
		Preload("Plano").
		Preload("Consultor").
		Preload("ParcelasRecebimento", func(db *gorm.DB) *gorm.DB {
			return db.Order("data_prevista_recebimento, id")
		}).
		Preload("ParcelasRecebimento.Parcela")
}

// Listar carrega as vendas com cliente, plano, consultor e parcelas numa única resposta.
func (r *repositoryImpl) Listar(db *gorm.DB) ([]Venda, error) {
	var vendas []Venda
	if err := comRelacoes(db).Order("data_venda DESC, id DESC").Find(&vendas).Error; err != nil {
		return nil, fmt.Errorf("listar vendas: %w", err)
	}
	for i := range vendas {
		normalizar(&vendas[i])
	}
	return vendas, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	var v Venda
	if err := comRelacoes(db).First(&v, id).Error; err != nil {
		return nil, err
	}
	normalizar(&v)
	return &v, nil
}

func normalizar(v *Venda) {
	if v.ParcelasRecebimento == nil {
		v.ParcelasRecebimento = []recebimento.ControleDeRecebimento{}
	}
}

func (r *repositoryImpl) BuscarPlano(db *gorm.DB, id uint) (*plano.Plano, error) {
	var p plano.Plano
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ReferenciasExistem(db *gorm.DB, clienteID, consultorID uint) (bool, bool, error) {
	var nc, nk int64
	if err := db.Table("clientes").Where("id = ?", clienteID).Count(&nc).Error; err != nil {
		return false, false, err
	}
	if err := db.Table("consultores").Where("id = ?", consultorID).Count(&nk).Error; err != nil {
		return false, false, err
	}
	return nc > 0, nk > 0, nil
}

func (r *repositoryImpl) PropostaEmUso(db *gorm.DB, numero string, exceto uint) (bool, error) {
	var n int64
	err := db.Model(&Venda{}).Where("numero_proposta = ? AND id <> ?", numero, exceto).Count(&n).Error
	return n > 0, err
}

// Salvar grava a venda e regenera as parcelas de recebimento na mesma transação.
// Recebimentos já registrados da venda são descartados.
func (r *repositoryImpl) Salvar(db *gorm.DB, v *Venda) error {
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("iniciar transação: %w", tx.Error)
	}

	if err := tx.Omit(clause.Associations).Save(v).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("salvar venda: %w", err)
	}
	if err := tx.Where("venda_id = ?", v.ID).Delete(&recebimento.ControleDeRecebimento{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("remover recebimentos antigos: %w", err)
	}
	modelos, err := parcela.ListarPorPlano(tx, v.PlanoID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("buscar parcelas do plano: %w", err)
	}
	gerados := GerarRecebimentos(*v, modelos)
	if len(gerados) > 0 {
		if err := tx.Omit(clause.Associations).Create(&gerados).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("gerar recebimentos: %w", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("confirmar transação: %w", err)
	}
	v.ParcelasRecebimento = gerados
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venda_id = ?", id).Delete(&recebimento.ControleDeRecebimento{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Venda{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

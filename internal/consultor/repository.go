package consultor

import (
	"time"

	"gorm.io/gorm"

	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

type Repository interface {
	ListarTodos(db *gorm.DB) ([]Consultor, error)
	BuscarPorID(db *gorm.DB, id uint) (*Consultor, error)
	Salvar(db *gorm.DB, c *Consultor) error
	Deletar(db *gorm.DB, id uint) error
	ContarVendas(db *gorm.DB, id uint) (int64, error)
	ListarRecebimentos(db *gorm.DB, id uint) ([]recebimento.ControleDeRecebimento, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Order("id").Find(&consultores).Error
	return consultores, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Consultor, error) {
	var c Consultor
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Consultor) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Consultor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) ContarVendas(db *gorm.DB, id uint) (int64, error) {
	var n int64
	err := db.Table("vendas").Where("consultor_id = ?", id).Count(&n).Error
	return n, err
}

// ListarRecebimentos busca as parcelas de todas as vendas do consultor.
func (r *repositoryImpl) ListarRecebimentos(db *gorm.DB, id uint) ([]recebimento.ControleDeRecebimento, error) {
	var lista []recebimento.ControleDeRecebimento
	err := db.
		Joins("JOIN vendas ON vendas.id = controle_de_recebimentos.venda_id").
		Where("vendas.consultor_id = ?", id).
		Order("controle_de_recebimentos.data_prevista_recebimento").
		Find(&lista).Error
	return lista, err
}

// MontarResumoConsultorDTO soma o que já foi recebido e o que falta receber.
func MontarResumoConsultorDTO(c Consultor, totalVendas int, recebimentos []recebimento.ControleDeRecebimento, agora time.Time) ResumoConsultorDTO {
	dto := ResumoConsultorDTO{
		ID:          c.ID,
		Nome:        c.Nome,
		Email:       c.Email,
		Telefone:    c.Telefone,
		TotalVendas: totalVendas,
	}
	for _, rc := range recebimentos {
		if rc.Recebida() {
			dto.ParcelasRecebidas++
			dto.ComissaoRecebida = dto.ComissaoRecebida.Add(rc.ValorParcela)
			continue
		}
		dto.ParcelasPendentes++
		dto.ComissaoAReceber = dto.ComissaoAReceber.Add(rc.ValorParcela)
		if rc.DiasAtraso(agora) > 0 {
			dto.ParcelasAtrasadas++
		}
	}
	return dto
}

package parcela

import "gorm.io/gorm"

type Repository interface {
	Listar(db *gorm.DB, planoID uint) ([]Parcela, error)
	BuscarPorID(db *gorm.DB, id uint) (*Parcela, error)
	PlanoExiste(db *gorm.DB, planoID uint) (bool, error)
	Salvar(db *gorm.DB, p *Parcela) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Listar devolve os modelos de parcela; planoID == 0 lista todos.
func (r *repositoryImpl) Listar(db *gorm.DB, planoID uint) ([]Parcela, error) {
	q := db.Order("plano_id, numero_parcela")
	if planoID != 0 {
		q = q.Where("plano_id = ?", planoID)
	}
	var parcelas []Parcela
	err := q.Find(&parcelas).Error
	return parcelas, err
}

// ListarPorPlano é usada na geração dos recebimentos de uma venda.
func ListarPorPlano(db *gorm.DB, planoID uint) ([]Parcela, error) {
	return NewRepository().Listar(db, planoID)
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Parcela, error) {
	var p Parcela
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) PlanoExiste(db *gorm.DB, planoID uint) (bool, error) {
	var n int64
	err := db.Table("planos").Where("id = ?", planoID).Count(&n).Error
	return n > 0, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Parcela) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Parcela{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

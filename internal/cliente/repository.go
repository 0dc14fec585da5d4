package cliente

import "gorm.io/gorm"

type Repository interface {
	Listar(db *gorm.DB) ([]Cliente, error)
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	Salvar(db *gorm.DB, c *Cliente) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Cliente, error) {
	var clientes []Cliente
	err := db.Order("id").Find(&clientes).Error
	return clientes, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

// Deletar retorna gorm.ErrRecordNotFound se nada foi apagado.
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Cliente{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

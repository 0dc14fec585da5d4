package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrUsuarioExiste = errors.New("usuário já existe")

type Repository interface {
	FindByUsername(db *gorm.DB, username string) (*Usuario, error)
	Save(db *gorm.DB, u *Usuario) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByUsername(db *gorm.DB, username string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, u *Usuario) error {
	var n int64
	if err := db.Model(&Usuario{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
		return fmt.Errorf("verificar username: %w", err)
	}
	if n > 0 {
		return ErrUsuarioExiste
	}
	if err := db.Create(u).Error; err != nil {
		return fmt.Errorf("criar usuário: %w", err)
	}
	return nil
}

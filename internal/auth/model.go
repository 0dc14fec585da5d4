package auth

import "time"

// Usuario é a conta que acessa o painel.
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	Ativo     bool      `gorm:"default:true" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Usuario) TableName() string { return "usuarios" }

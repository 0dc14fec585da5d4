package cliente

// Cliente é o segurado titular da proposta.
type Cliente struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Nome     string  `gorm:"size:255;not null" json:"nome"`
	Telefone *string `gorm:"size:20" json:"telefone"`
	Email    *string `gorm:"size:254" json:"email"`
	Endereco *string `gorm:"type:text" json:"endereco"`
}

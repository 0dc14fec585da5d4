package consultor

// Consultor é o vendedor que fecha as propostas.
type Consultor struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Nome     string  `gorm:"size:255;not null" json:"nome"`
	Telefone *string `gorm:"size:20" json:"telefone"`
	Email    *string `gorm:"size:254" json:"email"`
}

func (Consultor) TableName() string { return "consultores" }

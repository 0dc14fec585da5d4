package cliente

// ClienteRequest é usado em POST /api/clientes/ e PUT /api/clientes/{id}/
type ClienteRequest struct {
	Nome     string  `json:"nome" validate:"required,max=255"`
	Telefone *string `json:"telefone" validate:"omitempty,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Endereco *string `json:"endereco"`
}

func (req ClienteRequest) aplicar(c *Cliente) {
	c.Nome = req.Nome
	c.Telefone = req.Telefone
	c.Email = req.Email
	c.Endereco = req.Endereco
}

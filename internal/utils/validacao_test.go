package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type clienteTeste struct {
	Nome  string `json:"nome" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Tipo  string `json:"tipo" validate:"omitempty,oneof=PME PF"`
}

func TestValidar(t *testing.T) {
	erros := Validar(clienteTeste{Nome: "", Email: "x", Tipo: "Outro"})
	assert.Equal(t, []string{"Este campo é obrigatório."}, erros["nome"])
	assert.Equal(t, []string{"Insira um endereço de email válido."}, erros["email"])
	assert.Equal(t, []string{`"Outro" não é um escolha válido.`}, erros["tipo"])

	assert.True(t, Validar(clienteTeste{Nome: "Ana"}).Vazio())
	assert.Contains(t, Validar(clienteTeste{Nome: "Mariana"})["nome"][0], "5 caracteres")
}

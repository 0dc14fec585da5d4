package sessao

import (
	"context"
	"errors"
)

type Estado int

const (
	Verificando Estado = iota
	Autenticado
	NaoAutenticado
)

func (e Estado) String() string {
	switch e {
	case Verificando:
		return "verificando"
	case Autenticado:
		return "autenticado"
	}
	return "não autenticado"
}

var ErrLoginNecessario = errors.New("login necessário: execute o comando login")

// Verificador confirma um token junto ao servidor (POST api/token/verify/).
type Verificador interface {
	Verificar(ctx context.Context, token string) error
}

// Guard decide se o usuário pode entrar nas telas protegidas.
type Guard struct {
	Sessao      *Sessao
	Verificador Verificador
	// Observar recebe cada mudança de estado; opcional.
	Observar func(Estado)
}

// Verificar passa por Verificando e termina em Autenticado ou NaoAutenticado.
// Sem token salvo não há chamada de rede.
func (g *Guard) Verificar(ctx context.Context) Estado {
	g.notificar(Verificando)
	token := g.Sessao.Token()
	if token == "" {
		g.notificar(NaoAutenticado)
		return NaoAutenticado
	}
	if err := g.Verificador.Verificar(ctx, token); err != nil {
		g.notificar(NaoAutenticado)
		return NaoAutenticado
	}
	g.notificar(Autenticado)
	return Autenticado
}

// Exigir devolve ErrLoginNecessario quando a sessão não é válida.
func (g *Guard) Exigir(ctx context.Context) error {
	if g.Verificar(ctx) != Autenticado {
		return ErrLoginNecessario
	}
	return nil
}

func (g *Guard) notificar(e Estado) {
	if g.Observar != nil {
		g.Observar(e)
	}
}

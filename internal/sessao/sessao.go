// Package sessao guarda a credencial do usuário logado no painel.
package sessao

import (
	"sync"
)

// Dados é o que fica salvo entre execuções.
type Dados struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Usuario string `json:"usuario,omitempty"`
}

// Store persiste a sessão. Nil desliga a persistência.
type Store interface {
	Carregar() (Dados, error)
	Salvar(Dados) error
	Apagar() error
}

// Sessao é segura para uso concorrente: o gateway lê o token a cada
// requisição e marca a sessão como expirada quando o servidor rejeita.
type Sessao struct {
	mu       sync.RWMutex
	dados    Dados
	expirada bool
	store    Store
}

// Nova cria a sessão e, havendo store, recupera o que foi salvo.
func Nova(store Store) (*Sessao, error) {
	s := &Sessao{store: store}
	if store == nil {
		return s, nil
	}
	d, err := store.Carregar()
	if err != nil {
		return s, err
	}
	s.dados = d
	return s, nil
}

// Definir grava as credenciais após um login bem-sucedido.
func (s *Sessao) Definir(d Dados) error {
	s.mu.Lock()
	s.dados = d
	s.expirada = false
	s.mu.Unlock()
	if s.store != nil {
		return s.store.Salvar(d)
	}
	return nil
}

// Token devolve o access token atual, ou "" se não houver sessão válida.
func (s *Sessao) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expirada {
		return ""
	}
	return s.dados.Access
}

func (s *Sessao) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dados.Refresh
}

func (s *Sessao) Usuario() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dados.Usuario
}

// AtualizarAccess troca só o access token (após um refresh).
func (s *Sessao) AtualizarAccess(access string) error {
	s.mu.Lock()
	s.dados.Access = access
	s.expirada = false
	d := s.dados
	s.mu.Unlock()
	if s.store != nil {
		return s.store.Salvar(d)
	}
	return nil
}

// Expirar é chamado quando o servidor responde 401/403. O refresh
// continua guardado para uma tentativa de renovação.
func (s *Sessao) Expirar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expirada = true
}

func (s *Sessao) Expirada() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expirada
}

// Limpar encerra a sessão (logout).
func (s *Sessao) Limpar() error {
	s.mu.Lock()
	s.dados = Dados{}
	s.expirada = false
	s.mu.Unlock()
	if s.store != nil {
		return s.store.Apagar()
	}
	return nil
}

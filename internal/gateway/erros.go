package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTransporte cobre falhas de rede, timeout e respostas que não dá para ler.
	ErrTransporte = errors.New("falha de comunicação com o servidor")
	// ErrNaoAutorizado é devolvido em 401/403; a sessão é marcada como expirada.
	ErrNaoAutorizado = errors.New("não autorizado")
	ErrNaoEncontrado = errors.New("recurso não encontrado")
)

// ErroValidacao é a resposta 400 no formato {campo: [mensagens]}.
type ErroValidacao struct {
	Campos map[string][]string
}

func (e *ErroValidacao) Error() string {
	campos := make([]string, 0, len(e.Campos))
	for c := range e.Campos {
		campos = append(campos, c)
	}
	sort.Strings(campos)
	partes := make([]string, 0, len(campos))
	for _, c := range campos {
		partes = append(partes, c+": "+strings.Join(e.Campos[c], " "))
	}
	return "dados inválidos: " + strings.Join(partes, "; ")
}

// ErroServidor é qualquer outra resposta fora da faixa 2xx.
type ErroServidor struct {
	Status  int
	Detalhe string
}

func (e *ErroServidor) Error() string {
	if e.Detalhe == "" {
		return fmt.Sprintf("servidor respondeu %d", e.Status)
	}
	return fmt.Sprintf("servidor respondeu %d: %s", e.Status, e.Detalhe)
}

// lerCampos aceita valores string ou lista de strings por campo.
func lerCampos(corpo []byte) map[string][]string {
	var bruto map[string]json.RawMessage
	if err := json.Unmarshal(corpo, &bruto); err != nil {
		return map[string][]string{"non_field_errors": {strings.TrimSpace(string(corpo))}}
	}
	out := make(map[string][]string, len(bruto))
	for campo, raw := range bruto {
		var lista []string
		if err := json.Unmarshal(raw, &lista); err == nil {
			out[campo] = lista
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil {
			out[campo] = []string{msg}
			continue
		}
		out[campo] = []string{string(raw)}
	}
	return out
}

func lerDetalhe(corpo []byte) string {
	var d struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(corpo, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return strings.TrimSpace(string(corpo))
}

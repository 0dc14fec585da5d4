// models/status.go
package models

import "strings"

// Convenção de status textual para as parcelas de recebimento
const (
	StatusRecebido    = "Recebido"
	StatusNaoRecebido = "Não Recebido"
)

// Recebido compara sem diferenciar maiúsculas; qualquer outro valor é parcela em aberto.
func Recebido(status string) bool {
	return strings.EqualFold(status, StatusRecebido)
}

// NormalizarStatus devolve a grafia canônica de um status aceito.
func NormalizarStatus(status string) (string, bool) {
	s := strings.TrimSpace(status)
	switch {
	case strings.EqualFold(s, StatusRecebido):
		return StatusRecebido, true
	case strings.EqualFold(s, StatusNaoRecebido):
		return StatusNaoRecebido, true
	}
	return "", false
}

package notificacao

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TipoParcelaRecebida = "parcela.recebida"

// Evento é o payload enviado ao webhook e à fila.
type Evento struct {
	ID              string          `json:"id"`
	Tipo            string          `json:"tipo"`
	RecebimentoID   uint            `json:"recebimento_id"`
	VendaID         uint            `json:"venda_id"`
	NumeroParcela   int             `json:"numero_parcela"`
	ValorParcela    decimal.Decimal `json:"valor_parcela"`
	DataRecebimento string          `json:"data_recebimento,omitempty"`
	NumeroExtrato   string          `json:"numero_extrato,omitempty"`
	Momento         time.Time       `json:"momento"`
}

func NovoEvento(tipo string) Evento {
	return Evento{
		ID:      uuid.NewString(),
		Tipo:    tipo,
		Momento: time.Now().UTC(),
	}
}

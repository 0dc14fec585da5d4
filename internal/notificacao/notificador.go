package notificacao

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

type Notificador interface {
	Notificar(ctx context.Context, ev Evento) error
}

// Nulo é usado quando nenhum destino foi configurado.
type Nulo struct{}

func (Nulo) Notificar(context.Context, Evento) error { return nil }

// Multi repassa o evento para todos os destinos e junta os erros.
type Multi []Notificador

func (m Multi) Notificar(ctx context.Context, ev Evento) error {
	var errs []error
	for _, n := range m {
		if err := n.Notificar(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Assincrono dispara a notificação em segundo plano para não segurar a resposta HTTP.
type Assincrono struct {
	Destino Notificador
	Timeout time.Duration
	Log     *logrus.Logger
}

func (a Assincrono) Notificar(_ context.Context, ev Evento) error {
	go func() {
		timeout := a.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.Destino.Notificar(ctx, ev); err != nil && a.Log != nil {
			a.Log.WithError(err).WithFields(logrus.Fields{
				"evento": ev.ID,
				"tipo":   ev.Tipo,
			}).Warn("falha ao enviar notificação")
		}
	}()
	return nil
}

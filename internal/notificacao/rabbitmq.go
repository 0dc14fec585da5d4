package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publica eventos numa fila durável com publisher confirms.
type RabbitMQ struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	fila      string
	confirmCh <-chan amqp.Confirmation
}

func NovoRabbitMQ(url, fila string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("erro conectando no RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro abrindo canal no RabbitMQ: %w", err)
	}

	dlx := fila + ".dlx"
	dlq := fila + ".dlq"
	if err := declararTopologia(ch, fila, dlx, dlq); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("erro habilitando publisher confirms: %w", err)
	}

	return &RabbitMQ{
		conn:      conn,
		ch:        ch,
		fila:      fila,
		confirmCh: ch.NotifyPublish(make(chan amqp.Confirmation, 16)),
	}, nil
}

func declararTopologia(ch *amqp.Channel, fila, dlx, dlq string) error {
	if err := ch.ExchangeDeclare(dlx, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("erro declarando exchange DLX %q: %w", dlx, err)
	}
	if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
		return fmt.Errorf("erro declarando fila DLQ %q: %w", dlq, err)
	}
	if err := ch.QueueBind(dlq, dlq, dlx, false, nil); err != nil {
		return fmt.Errorf("erro bindando DLQ %q no DLX %q: %w", dlq, dlx, err)
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    dlx,
		"x-dead-letter-routing-key": dlq,
	}
	if _, err := ch.QueueDeclare(fila, true, false, false, false, args); err != nil {
		return fmt.Errorf("erro declarando fila %q: %w", fila, err)
	}
	return nil
}

func montarPublicacao(ev Evento) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("erro serializando evento: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    ev.ID,
		Type:         ev.Tipo,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.Momento,
	}, nil
}

func (r *RabbitMQ) Notificar(ctx context.Context, ev Evento) error {
	pub, err := montarPublicacao(ev)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ch.PublishWithContext(ctx, "", r.fila, false, false, pub); err != nil {
		return fmt.Errorf("erro publicando mensagem no RabbitMQ: %w", err)
	}
	select {
	case conf, ok := <-r.confirmCh:
		if !ok {
			return errors.New("canal de confirmações encerrado")
		}
		if !conf.Ack {
			return errors.New("mensagem não confirmada pelo broker")
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(30 * time.Second):
		return errors.New("tempo esgotado aguardando confirmação do broker")
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Publisher публикует события в NATS
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher подключается к NATS.
// Переподключение бесконечное: потеря брокера не должна останавливать сервис
func NewPublisher(url string, log Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("room-booking-service"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// Publish сериализует событие и отправляет его в subject по типу
func (p *Publisher) Publish(_ context.Context, event *BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.Type, err)
	}
	if err := p.conn.Publish(event.Subject(), data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	return nil
}

// Close дожидается отправки буфера и закрывает соединение
func (p *Publisher) Close() error {
	return p.conn.Drain()
}

// NoopPublisher используется, когда NATS выключен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *BookingEvent) error { return nil }

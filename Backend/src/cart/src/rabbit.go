package main

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const RKCartUpdated = "cart.updated"

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type Rabbit struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewRabbit returns nil, nil when url is empty; a nil *Rabbit drops every
// message.
func NewRabbit(url, exchange string) (*Rabbit, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Rabbit{conn: conn, ch: ch, exchange: exchange}, nil
}

func (r *Rabbit) Publish(ctx context.Context, key string, body []byte) error {
	if r == nil || r.ch == nil {
		return nil
	}
	return r.ch.PublishWithContext(ctx, r.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
}

func (r *Rabbit) Close() {
	if r == nil {
		return
	}
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

type CartUpdatedPayload struct {
	SessionID  string `json:"session_id"`
	Kind       string `json:"kind"`
	BookID     string `json:"book_id,omitempty"`
	TotalItems int32  `json:"total_items"`
	TotalCents int64  `json:"total_cents"`
}

// CartEvents publishes every cart change as cart.updated.
func CartEvents(pub Publisher, timeout time.Duration) ObserverFactory {
	return func(sessionID string) Observer {
		return func(ev Event) {
			body, err := json.Marshal(CartUpdatedPayload{
				SessionID:  sessionID,
				Kind:       ev.Kind.String(),
				BookID:     ev.BookID,
				TotalItems: ev.TotalItems,
				TotalCents: ev.TotalPrice.Cents,
			})
			if err != nil {
				log.Error().Err(err).Msg("encode cart.updated")
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := pub.Publish(ctx, RKCartUpdated, body); err != nil {
				log.Warn().Err(err).Str("session", sessionID).Msg("publish cart.updated failed")
			}
		}
	}
}

// CartLog logs every cart change at debug level.
func CartLog(sessionID string) Observer {
	return func(ev Event) {
		log.Debug().
			Str("session", sessionID).
			Stringer("kind", ev.Kind).
			Str("book", ev.BookID).
			Int32("total_items", ev.TotalItems).
			Int64("total_cents", ev.TotalPrice.Cents).
			Msg("cart changed")
	}
}

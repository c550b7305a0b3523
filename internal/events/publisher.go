package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tusharrdev/greencart-backend/internal/order"
)

const (
	OrderPlacedQueue = "order.placed"
	OrderPaidQueue   = "order.paid"
)

// MustDialRabbit connects to RabbitMQ from the given URL, falling back
// to the environment.
func MustDialRabbit(url string) *amqp.Connection {
	if url == "" {
		url = os.Getenv("RABBITMQ_URL")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("connect to RabbitMQ: %v", err)
	}
	return conn
}

type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, q := range []string{OrderPlacedQueue, OrderPaidQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	ev := OrderPlaced{
		EventType:   "OrderPlaced",
		OrderID:     o.ID,
		UserID:      o.UserID,
		Amount:      o.Amount,
		PaymentType: string(o.PaymentType),
		Timestamp:   time.Now().UTC(),
	}

	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	return p.publishJSON(ctx, OrderPlacedQueue, body)
}

func (p *Publisher) PublishOrderPaid(ctx context.Context, orderID, userID string) error {
	ev := OrderPaid{
		EventType: "OrderPaid",
		OrderID:   orderID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPaid: %w", err)
	}

	return p.publishJSON(ctx, OrderPaidQueue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

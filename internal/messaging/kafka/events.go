package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

// TopicOrderEvents — топик по умолчанию для событий о заказах.
const TopicOrderEvents = "pizzeria.order.events"

// OrderEventMessage — сообщение о заказе в формате Kafka.
type OrderEventMessage struct {
	EventID        string                `json:"event_id"`
	EventType      domain.OrderEventType `json:"event_type"`
	Name           string                `json:"name"`
	Size           domain.Size           `json:"size"`
	Toppings       []string              `json:"toppings"`
	Quantity       int                   `json:"quantity"`
	Subtotal       int64                 `json:"subtotal"`
	OrderTimestamp string                `json:"order_timestamp"`
	OccurredAt     time.Time             `json:"occurred_at"`
}

// NewOrderEventMessage строит сообщение из доменного события, присваивая ему новый event_id.
func NewOrderEventMessage(event domain.OrderEvent) *OrderEventMessage {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	toppings := event.Order.Toppings
	if toppings == nil {
		toppings = []string{}
	}

	return &OrderEventMessage{
		EventID:        uuid.NewString(),
		EventType:      event.Type,
		Name:           event.Order.Name,
		Size:           event.Order.Size,
		Toppings:       toppings,
		Quantity:       event.Order.Quantity,
		Subtotal:       event.Order.Subtotal,
		OrderTimestamp: event.Order.Timestamp,
		OccurredAt:     occurredAt.UTC(),
	}
}

// Order восстанавливает заказ из сообщения.
func (m *OrderEventMessage) Order() domain.Order {
	return domain.Order{
		Name:      m.Name,
		Size:      m.Size,
		Toppings:  m.Toppings,
		Quantity:  m.Quantity,
		Subtotal:  m.Subtotal,
		Timestamp: m.OrderTimestamp,
	}
}

// ParseOrderEvent парсит OrderEventMessage из сообщения.
func ParseOrderEvent(message *sarama.ConsumerMessage) (*OrderEventMessage, error) {
	if message == nil {
		return nil, fmt.Errorf("message is nil")
	}
	var event OrderEventMessage
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order event: %w", err)
	}
	return &event, nil
}

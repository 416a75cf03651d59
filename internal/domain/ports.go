package domain

import (
	"context"
	"time"
)

// OrderEventType задаёт тип уведомления о заказе.
type OrderEventType string

const (
	OrderEventRegistered OrderEventType = "order.registered"
	OrderEventDeleted    OrderEventType = "order.deleted"
)

// OrderEvent — уведомление о зарегистрированном или удалённом заказе.
type OrderEvent struct {
	Type       OrderEventType
	Order      Order
	OccurredAt time.Time
}

// EventPublisher отправляет уведомления о заказах наружу (например, на кухню).
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

package domain

import (
	"strings"
	"time"
)

// Size описывает размер пиццы. Допустимые значения образуют закрытый перечень.
type Size string

const (
	// SizeSmall — маленькая пицца.
	SizeSmall Size = "Small"
	// SizeMedium — средняя пицца.
	SizeMedium Size = "Medium"
	// SizeLarge — большая пицца.
	SizeLarge Size = "Large"
)

const (
	// TimestampLayout — ISO-8601 в UTC с миллисекундами, формат хранимого timestamp.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
	// DateLayout — дата без времени, префикс TimestampLayout.
	DateLayout = "2006-01-02"
)

// Order — одна покупка пиццы. Поле Name служит ключом группировки и не уникально.
type Order struct {
	Name     string   `json:"name"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
	Quantity int      `json:"quantity"`
	// Subtotal вычисляется при создании и больше не меняется.
	Subtotal int64 `json:"subtotal"`
	// Timestamp фиксирует момент создания заказа и неизменяем.
	Timestamp string `json:"timestamp"`
}

// NewOrder собирает заказ из формы, рассчитывая subtotal и timestamp.
// Форма должна быть предварительно провалидирована.
func NewOrder(form OrderForm, createdAt time.Time) Order {
	toppings := form.Toppings()
	quantity := form.EffectiveQuantity()

	return Order{
		Name:      form.Name,
		Size:      form.Size,
		Toppings:  toppings,
		Quantity:  quantity,
		Subtotal:  ComputeSubtotal(form.Size, toppings, quantity),
		Timestamp: FormatTimestamp(createdAt),
	}
}

// PlacedOn сообщает, создан ли заказ в указанный день (формат DateLayout).
// Сравнение идёт по строковому префиксу timestamp.
func (o Order) PlacedOn(day string) bool {
	return day != "" && strings.HasPrefix(o.Timestamp, day)
}

// FormatTimestamp приводит время к формату хранения.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DateOf возвращает дату (UTC) в формате DateLayout.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

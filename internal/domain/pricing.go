package domain

const (
	// ToppingPrice — надбавка за одну добавку.
	ToppingPrice int64 = 10
	// MaxChargedToppings — сверх этого количества добавки бесплатны (бизнес-правило).
	MaxChargedToppings = 2
	// MaxQuantity — верхняя граница количества в одном заказе.
	MaxQuantity = 1000
)

var basePrices = map[Size]int64{
	SizeSmall:  40,
	SizeMedium: 80,
	SizeLarge:  120,
}

// BasePrice возвращает базовую цену размера и признак того, что размер известен.
func BasePrice(size Size) (int64, bool) {
	price, ok := basePrices[size]
	return price, ok
}

// Known сообщает, входит ли размер в перечень.
func (s Size) Known() bool {
	_, ok := basePrices[s]
	return ok
}

// ComputeSubtotal считает (базовая цена + надбавка за добавки) * количество.
// Неизвестный размер оценивается базовой ценой 0.
func ComputeSubtotal(size Size, toppings []string, quantity int) int64 {
	base, _ := BasePrice(size)

	charged := len(toppings)
	if charged > MaxChargedToppings {
		charged = MaxChargedToppings
	}

	return (base + int64(charged)*ToppingPrice) * int64(quantity)
}

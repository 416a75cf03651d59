package domain

import "errors"

// OrderForm — входные данные регистрации заказа.
// ToppingFlags позиционно соответствуют ToppingCatalog().
type OrderForm struct {
	Name         string
	Size         Size
	ToppingFlags []bool
	Quantity     int
}

// NewOrderForm возвращает сброшенную форму, сохраняющую только имя клиента.
func NewOrderForm(name string) OrderForm {
	return OrderForm{
		Name:         name,
		ToppingFlags: make([]bool, len(toppingCatalog)),
		Quantity:     1,
	}
}

// Toppings возвращает выбранные добавки.
func (f OrderForm) Toppings() []string {
	return ToppingsFromFlags(f.ToppingFlags)
}

// EffectiveQuantity подставляет количество по умолчанию (1) для нулевого значения.
func (f OrderForm) EffectiveQuantity() int {
	if f.Quantity == 0 {
		return 1
	}
	return f.Quantity
}

// Validate проверяет форму и возвращает все найденные нарушения одной ошибкой.
func (f OrderForm) Validate() error {
	var errs []error

	if f.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if f.Quantity < 0 || f.Quantity > MaxQuantity {
		errs = append(errs, ErrQuantityInvalid)
	}
	if len(f.ToppingFlags) > len(toppingCatalog) {
		errs = append(errs, ErrToppingFlagsInvalid)
	}

	return errors.Join(errs...)
}

// FormFromOrder заполняет форму редактирования данными существующего заказа.
func FormFromOrder(o Order) OrderForm {
	return OrderForm{
		Name:         o.Name,
		Size:         o.Size,
		ToppingFlags: FlagsFromToppings(o.Toppings),
		Quantity:     o.Quantity,
	}
}

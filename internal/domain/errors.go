package domain

import "errors"

var (
	// ErrNameRequired — в форме не указано имя клиента.
	ErrNameRequired = errors.New("name is required")
	// ErrQuantityInvalid — количество вне диапазона 0..MaxQuantity.
	ErrQuantityInvalid = errors.New("quantity is out of range")
	// ErrToppingFlagsInvalid — флагов больше, чем добавок в каталоге.
	ErrToppingFlagsInvalid = errors.New("topping flags do not match catalog")
	// ErrUnknownTopping — добавки нет в каталоге.
	ErrUnknownTopping = errors.New("unknown topping")
	// ErrSlotKeyRequired — пустой ключ слота хранения.
	ErrSlotKeyRequired = errors.New("slot key is required")
	// ErrStorageNotInitialized — хранилище не открыто или уже закрыто.
	ErrStorageNotInitialized = errors.New("storage is not initialized")
)

// IsValidation сообщает, является ли ошибка ошибкой валидации формы.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrToppingFlagsInvalid) ||
		errors.Is(err, ErrUnknownTopping)
}

package domain

import (
	"fmt"
	"strings"
)

const (
	ToppingHam       = "Ham"
	ToppingPineapple = "Pineapple"
	ToppingMushrooms = "Mushrooms"
)

// toppingCatalog задаёт порядок флагов в форме.
var toppingCatalog = []string{ToppingHam, ToppingPineapple, ToppingMushrooms}

// ToppingCatalog возвращает копию каталога добавок.
func ToppingCatalog() []string {
	result := make([]string, len(toppingCatalog))
	copy(result, toppingCatalog)
	return result
}

// ToppingsFromFlags переводит позиционные флаги формы в список названий добавок.
func ToppingsFromFlags(flags []bool) []string {
	toppings := make([]string, 0, len(toppingCatalog))
	for i, checked := range flags {
		if checked && i < len(toppingCatalog) {
			toppings = append(toppings, toppingCatalog[i])
		}
	}
	return toppings
}

// FlagsFromToppings строит флаги формы по членству в каталоге.
// Названия вне каталога игнорируются.
func FlagsFromToppings(toppings []string) []bool {
	flags := make([]bool, len(toppingCatalog))
	for i, name := range toppingCatalog {
		for _, selected := range toppings {
			if selected == name {
				flags[i] = true
				break
			}
		}
	}
	return flags
}

// ParseTopping возвращает каноничное название добавки без учёта регистра.
func ParseTopping(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	for _, known := range toppingCatalog {
		if strings.EqualFold(known, name) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTopping, raw)
}

// ParseSize приводит известный размер к каноничному написанию.
// Неизвестное значение возвращается как есть: цену для него решает ComputeSubtotal.
func ParseSize(raw string) Size {
	value := strings.TrimSpace(raw)
	for size := range basePrices {
		if strings.EqualFold(string(size), value) {
			return size
		}
	}
	return Size(value)
}

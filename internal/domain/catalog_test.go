package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

func TestToppingCatalog_ReturnsCopy(t *testing.T) {
	catalog := domain.ToppingCatalog()
	require.Equal(t, []string{"Ham", "Pineapple", "Mushrooms"}, catalog)

	catalog[0] = "Anchovies"
	assert.Equal(t, "Ham", domain.ToppingCatalog()[0])
}

func TestToppingsFromFlags(t *testing.T) {
	assert.Equal(t, []string{"Ham", "Mushrooms"}, domain.ToppingsFromFlags([]bool{true, false, true}))
	assert.Empty(t, domain.ToppingsFromFlags(nil))
	assert.NotNil(t, domain.ToppingsFromFlags(nil), "empty selection must serialize as []")
	// Флаги сверх каталога игнорируются.
	assert.Equal(t, []string{"Pineapple"}, domain.ToppingsFromFlags([]bool{false, true, false, true}))
}

func TestFlagsFromToppings(t *testing.T) {
	assert.Equal(t, []bool{false, true, true}, domain.FlagsFromToppings([]string{"Mushrooms", "Pineapple"}))
	assert.Equal(t, []bool{false, false, false}, domain.FlagsFromToppings([]string{"Olives"}))
}

func TestParseTopping(t *testing.T) {
	name, err := domain.ParseTopping(" mushrooms ")
	require.NoError(t, err)
	assert.Equal(t, domain.ToppingMushrooms, name)

	_, err = domain.ParseTopping("olives")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTopping))
}

func TestParseSize(t *testing.T) {
	assert.Equal(t, domain.SizeLarge, domain.ParseSize("large"))
	assert.Equal(t, domain.SizeSmall, domain.ParseSize(" Small"))
	assert.Equal(t, domain.Size("Family"), domain.ParseSize("Family"))
}

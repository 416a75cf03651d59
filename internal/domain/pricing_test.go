package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

func TestComputeSubtotal(t *testing.T) {
	cases := []struct {
		name     string
		size     domain.Size
		toppings []string
		quantity int
		want     int64
	}{
		{name: "small plain", size: domain.SizeSmall, quantity: 1, want: 40},
		{name: "medium one topping", size: domain.SizeMedium, toppings: []string{domain.ToppingHam}, quantity: 1, want: 90},
		{name: "large two toppings", size: domain.SizeLarge, toppings: []string{domain.ToppingHam, domain.ToppingPineapple}, quantity: 1, want: 140},
		{
			name:     "surcharge capped at two toppings",
			size:     domain.SizeLarge,
			toppings: []string{domain.ToppingHam, domain.ToppingPineapple, domain.ToppingMushrooms},
			quantity: 2,
			want:     280,
		},
		{name: "unknown size", size: domain.Size("Unknown"), quantity: 1, want: 0},
		{name: "unknown size with topping", size: domain.Size("Huge"), toppings: []string{domain.ToppingHam}, quantity: 3, want: 30},
		{name: "zero quantity", size: domain.SizeSmall, quantity: 0, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ComputeSubtotal(tc.size, tc.toppings, tc.quantity)
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestComputeSubtotal_MaxQuantityStaysPositive(t *testing.T) {
	all := []string{domain.ToppingHam, domain.ToppingPineapple, domain.ToppingMushrooms}
	got := domain.ComputeSubtotal(domain.SizeLarge, all, domain.MaxQuantity)
	if got != 140*domain.MaxQuantity {
		t.Fatalf("expected %d, got %d", 140*domain.MaxQuantity, got)
	}
}

func TestBasePrice(t *testing.T) {
	if price, ok := domain.BasePrice(domain.SizeMedium); !ok || price != 80 {
		t.Fatalf("expected 80/true for medium, got %d/%v", price, ok)
	}
	if _, ok := domain.BasePrice("Family"); ok {
		t.Fatal("expected unknown size to be reported")
	}
	if domain.Size("Family").Known() {
		t.Fatal("Family must not be a known size")
	}
	if !domain.SizeSmall.Known() {
		t.Fatal("Small must be a known size")
	}
}

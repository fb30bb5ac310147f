// Package cart holds the pure cart operations. Every function returns a new
// cart and leaves its input untouched.
package cart

import (
	"slices"

	"storefront/internal/domain"
)

// MaxLineQuantity caps the units a single line can hold so that counts and
// totals never overflow.
const MaxLineQuantity = 9999

// Add merges item into c. An existing line for the same id only grows in
// quantity; its title, price and image are kept. Quantities are clamped to
// [1, MaxLineQuantity], before and after merging.
func Add(c domain.Cart, item domain.CartLineItem) domain.Cart {
	item.Quantity = max(1, min(item.Quantity, MaxLineQuantity))
	out := slices.Clone(c)
	if out == nil {
		out = domain.Cart{}
	}
	for i := range out {
		if out[i].ID == item.ID {
			out[i].Quantity = min(out[i].Quantity+item.Quantity, MaxLineQuantity)
			return out
		}
	}
	return append(out, item)
}

// Remove drops every line with the given id.
func Remove(c domain.Cart, id string) domain.Cart {
	out := make(domain.Cart, 0, len(c))
	for _, line := range c {
		if line.ID != id {
			out = append(out, line)
		}
	}
	return out
}

func Clear() domain.Cart {
	return domain.Cart{}
}

// Subtotal is the sum of price times quantity, unrounded.
func Subtotal(c domain.Cart) float64 {
	var sum float64
	for _, line := range c {
		sum += line.LineTotal()
	}
	return sum
}

func Total(c domain.Cart, shippingFee float64) float64 {
	return Subtotal(c) + shippingFee
}

// Count is the number of units across all lines.
func Count(c domain.Cart) int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

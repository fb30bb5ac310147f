package cart

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// OrderDetails is what the shopper fills in at checkout.
type OrderDetails struct {
	CustomerName  string  `json:"customerName"`
	Address       string  `json:"address"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
	ShippingFee   float64 `json:"-"`
}

// Summarize renders the order message sent over WhatsApp. Lines keep cart
// order; optional fields are left out when empty.
func Summarize(c domain.Cart, details OrderDetails) string {
	lines := make([]string, 0, len(c)+7)
	lines = append(lines, fmt.Sprintf("Hi, I'm %s and I'd like to order:", strings.TrimSpace(details.CustomerName)))
	for _, line := range c {
		lines = append(lines, fmt.Sprintf("- (%d) %s — $%s", line.Quantity, line.Title, FormatAmount(line.LineTotal())))
	}
	lines = append(lines, "Subtotal: $"+FormatAmount(Subtotal(c)))
	if details.ShippingFee != 0 {
		lines = append(lines, "Shipping: $"+FormatAmount(details.ShippingFee))
	}
	lines = append(lines, "Total: $"+FormatAmount(Total(c, details.ShippingFee)))
	if v := strings.TrimSpace(details.Address); v != "" {
		lines = append(lines, "Deliver to: "+v)
	}
	if v := strings.TrimSpace(details.PaymentMethod); v != "" {
		lines = append(lines, "Payment method: "+v)
	}
	if v := strings.TrimSpace(details.Notes); v != "" {
		lines = append(lines, "Notes: "+v)
	}
	return strings.Join(lines, "\n")
}

// FormatAmount prints the shortest decimal that reads back as v.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

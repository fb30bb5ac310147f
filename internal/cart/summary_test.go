package cart

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestSummarize_Full(t *testing.T) {
	c := domain.Cart{
		{ID: "p1", Title: "GPU", Price: 100, Quantity: 2},
		{ID: "p2", Title: "Cable", Price: 4.5, Quantity: 1},
	}

	got := Summarize(c, OrderDetails{
		CustomerName:  "Ana",
		Address:       "Main St 1",
		PaymentMethod: "cash",
		Notes:         "ring twice",
		ShippingFee:   8500,
	})

	want := strings.Join([]string{
		"Hi, I'm Ana and I'd like to order:",
		"- (2) GPU — $200",
		"- (1) Cable — $4.5",
		"Subtotal: $204.5",
		"Shipping: $8500",
		"Total: $8704.5",
		"Deliver to: Main St 1",
		"Payment method: cash",
		"Notes: ring twice",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSummarize_OmitsEmptyOptionalFields(t *testing.T) {
	got := Summarize(domain.Cart{{ID: "p1", Title: "GPU", Price: 100, Quantity: 1}}, OrderDetails{CustomerName: "Bo"})

	assert.Equal(t, "Hi, I'm Bo and I'd like to order:\n- (1) GPU — $100\nSubtotal: $100\nTotal: $100", got)
}

func TestSummarize_Deterministic(t *testing.T) {
	c := domain.Cart{{ID: "a", Title: "A", Price: 0.1, Quantity: 3}}
	d := OrderDetails{CustomerName: "X", Address: "Y"}
	assert.Equal(t, Summarize(c, d), Summarize(c, d))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100", FormatAmount(100))
	assert.Equal(t, "99.5", FormatAmount(99.5))
	assert.Equal(t, "0", FormatAmount(0))
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("+54 9 11-1234-5678", "Hi, I'm Ana & co\n- (1) GPU — $100")

	require.True(t, strings.HasPrefix(got, "https://wa.me/5491112345678?text="))
	assert.NotContains(t, got, "+")
	assert.Contains(t, got, "Hi%2C%20I'm%20Ana%20%26%20co%0A-%20(1)%20GPU")

	parsed, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "Hi, I'm Ana & co\n- (1) GPU — $100", parsed.Query().Get("text"))
}

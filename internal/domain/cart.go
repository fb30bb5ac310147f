package domain

import (
	"context"
	"time"
)

// CartLineItem is one product in a cart with the quantity requested.
type CartLineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

func (i CartLineItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered list of line items with at most one entry per
// product id. Operations in package cart return new values.
type Cart []CartLineItem

// CartStore keeps one cart per shopper session.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart, ttl time.Duration) error
	// Update applies fn to the stored cart and saves the result for ttl as
	// one step; concurrent updates of a session never overwrite each other.
	// An error from fn leaves the stored cart unchanged and is returned.
	Update(ctx context.Context, sessionID string, ttl time.Duration, fn func(Cart) (Cart, error)) (Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

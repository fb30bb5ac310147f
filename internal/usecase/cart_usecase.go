package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type CartSettings struct {
	TTL              time.Duration
	ShippingFee      float64
	FallbackWhatsApp string
}

// CartView is a cart with its totals worked out.
type CartView struct {
	Items       domain.Cart `json:"items"`
	Count       int         `json:"count"`
	Subtotal    float64     `json:"subtotal"`
	ShippingFee float64     `json:"shippingFee"`
	Total       float64     `json:"total"`
}

type CheckoutResult struct {
	Summary     string  `json:"summary"`
	WhatsAppURL string  `json:"whatsappUrl"`
	Total       float64 `json:"total"`
}

type CartUseCase interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) (*CartView, error)
	Checkout(ctx context.Context, sessionID string, details cart.OrderDetails) (*CheckoutResult, error)
}

type cartUseCase struct {
	carts       domain.CartStore
	productRepo domain.ProductRepository
	stores      StoreUseCase
	settings    CartSettings
	log         *logrus.Logger
}

func NewCartUseCase(carts domain.CartStore, pRepo domain.ProductRepository, stores StoreUseCase, settings CartSettings, logger *logrus.Logger) CartUseCase {
	return &cartUseCase{
		carts:       carts,
		productRepo: pRepo,
		stores:      stores,
		settings:    settings,
		log:         logger,
	}
}

func (uc *cartUseCase) view(c domain.Cart) *CartView {
	if c == nil {
		c = cart.Clear()
	}
	return &CartView{
		Items:       c,
		Count:       cart.Count(c),
		Subtotal:    cart.Subtotal(c),
		ShippingFee: uc.settings.ShippingFee,
		Total:       cart.Total(c, uc.settings.ShippingFee),
	}
}

func (uc *cartUseCase) load(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing cart session: %w", domain.ErrInvalidInput)
	}
	c, err := uc.carts.Load(ctx, sessionID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load cart for session %s: %v", sessionID, err)
		return nil, err
	}
	return c, nil
}

// update applies fn to the stored cart atomically and keeps it for the
// configured TTL.
func (uc *cartUseCase) update(ctx context.Context, sessionID string, fn func(domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing cart session: %w", domain.ErrInvalidInput)
	}
	c, err := uc.carts.Update(ctx, sessionID, uc.settings.TTL, fn)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Errorf("Use Case: Failed to update cart for session %s: %v", sessionID, err)
		}
		return nil, err
	}
	return c, nil
}

func (uc *cartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.view(c), nil
}

// AddItem copies title, price and thumbnail from the current product
// record. Quantities below 1 count as 1.
func (uc *cartUseCase) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("product ID is required: %w", domain.ErrInvalidInput)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("missing cart session: %w", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		uc.log.Warnf("Use Case: Cannot add product %s to cart: %v", productID, err)
		return nil, err
	}

	line := domain.CartLineItem{
		ID:       product.ID,
		Title:    product.Title,
		Price:    product.Price,
		Quantity: quantity,
		Image:    product.Thumbnail(),
	}
	c, err := uc.update(ctx, sessionID, func(current domain.Cart) (domain.Cart, error) {
		return cart.Add(current, line), nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Added product %s to cart %s, %d units in cart", productID, sessionID, cart.Count(c))
	return uc.view(c), nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	c, err := uc.update(ctx, sessionID, func(current domain.Cart) (domain.Cart, error) {
		return cart.Remove(current, productID), nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Removed product %s from cart %s", productID, sessionID)
	return uc.view(c), nil
}

func (uc *cartUseCase) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing cart session: %w", domain.ErrInvalidInput)
	}
	if err := uc.carts.Delete(ctx, sessionID); err != nil {
		uc.log.Errorf("Use Case: Failed to clear cart for session %s: %v", sessionID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Cleared cart %s", sessionID)
	return uc.view(cart.Clear()), nil
}

// Checkout builds the WhatsApp order message and empties the cart. The
// cart is taken and cleared in one step so a concurrent add lands either
// in this order or in the next cart.
func (uc *cartUseCase) Checkout(ctx context.Context, sessionID string, details cart.OrderDetails) (*CheckoutResult, error) {
	if strings.TrimSpace(details.CustomerName) == "" {
		return nil, fmt.Errorf("customer name is required: %w", domain.ErrInvalidInput)
	}

	var c domain.Cart
	_, err := uc.update(ctx, sessionID, func(current domain.Cart) (domain.Cart, error) {
		if len(current) == 0 {
			return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalidInput)
		}
		c = current
		return cart.Clear(), nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Warnf("Use Case: Checkout attempted with empty cart %s", sessionID)
		}
		return nil, err
	}

	phone := uc.settings.FallbackWhatsApp
	info, err := uc.stores.GetStoreInfo(ctx)
	if err != nil {
		uc.log.Warnf("Use Case: Store info unavailable at checkout, using fallback WhatsApp number: %v", err)
	} else if strings.TrimSpace(info.WhatsApp) != "" {
		phone = info.WhatsApp
	}
	if phone == "" {
		uc.log.Warn("Use Case: No WhatsApp number configured; order link will not target a chat")
	}

	details.ShippingFee = uc.settings.ShippingFee
	summary := cart.Summarize(c, details)
	result := &CheckoutResult{
		Summary:     summary,
		WhatsAppURL: cart.WhatsAppURL(phone, summary),
		Total:       cart.Total(c, details.ShippingFee),
	}
	uc.log.Infof("Use Case: Checkout for session %s with %d lines, total %s", sessionID, len(c), cart.FormatAmount(result.Total))
	return result, nil
}

package delivery

import (
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	CartCookieName   = "cart_session"
	cartCookieMaxAge = 30 * 24 * 60 * 60
)

// cartSession returns the shopper's cart session id, issuing a fresh
// cookie on first use.
func cartSession(c *gin.Context) string {
	if id, err := c.Cookie(CartCookieName); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCookieName, id, cartCookieMaxAge, "/", "", false, true)
	return id
}

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	carts := router.Group("/cart")
	{
		carts.GET("", h.GetCart)
		carts.DELETE("", h.ClearCart)
		carts.POST("/items", h.AddItem)
		carts.DELETE("/items/:id", h.RemoveItem)
		carts.POST("/checkout", h.Checkout)
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	CustomerName  string `json:"customerName"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.useCase.GetCart(c.Request.Context(), cartSession(c))
	if err != nil {
		h.log.Errorf("Failed to load cart: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for add to cart: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.useCase.AddItem(c.Request.Context(), cartSession(c), req.ProductID, req.Quantity)
	if err != nil {
		h.log.Warnf("Failed to add product %s to cart: %v", req.ProductID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add item: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Item added to cart", view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id := c.Param("id")

	view, err := h.useCase.RemoveItem(c.Request.Context(), cartSession(c), id)
	if err != nil {
		h.log.Warnf("Failed to remove product %s from cart: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to remove item: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Item removed from cart", view)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	view, err := h.useCase.ClearCart(c.Request.Context(), cartSession(c))
	if err != nil {
		h.log.Errorf("Failed to clear cart: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to clear cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart cleared", view)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for checkout: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.useCase.Checkout(c.Request.Context(), cartSession(c), cart.OrderDetails{
		CustomerName:  req.CustomerName,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		h.log.Warnf("Checkout failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to check out: "+err.Error())
		return
	}

	h.log.Infof("Checkout prepared for %s, total %s", req.CustomerName, cart.FormatAmount(result.Total))
	SuccessResponse(c, http.StatusOK, "Order message prepared", result)
}

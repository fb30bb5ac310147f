package delivery

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("storefront").Funcs(template.FuncMap{
	"heading": sectionHeading,
	"money":   cart.FormatAmount,
}).ParseFS(templateFS, "templates/*.html"))

// sectionHeading renders a category name as <h1>..<h6> by depth.
func sectionHeading(s catalog.Section) template.HTML {
	level := s.HeadingLevel()
	return template.HTML(fmt.Sprintf(`<h%d class="category-name">%s</h%d>`,
		level, html.EscapeString(s.Category.Name), level))
}

type headView struct {
	Title       string
	Description string
	SEO         domain.SEOHome
}

type homeView struct {
	Head     headView
	Page     *usecase.StorefrontPage
	Cart     *usecase.CartView
	Contact  contactView
	ShowCart bool
}

// contactView holds the links of the store's contact block. Empty fields
// are not rendered.
type contactView struct {
	WhatsAppURL string
	CallURL     template.URL
}

func newContactView(info domain.StoreInfo) contactView {
	var v contactView
	if strings.TrimSpace(info.WhatsApp) != "" {
		v.WhatsAppURL = cart.WhatsAppURL(info.WhatsApp, "")
	}
	// html/template rejects the tel: scheme, so the number is reduced to
	// dialable characters before being marked safe.
	dial := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, info.Phone)
	if dial != "" {
		v.CallURL = template.URL("tel:" + dial)
	}
	return v
}

type itemView struct {
	Head   headView
	Page   *usecase.ProductPage
	Images []string
}

type errorView struct {
	Status  int
	Message string
}

// StorefrontHandler serves the server-rendered shop pages.
type StorefrontHandler struct {
	storefront usecase.StorefrontUseCase
	carts      usecase.CartUseCase
	log        *logrus.Logger
}

func NewStorefrontHandler(storefront usecase.StorefrontUseCase, carts usecase.CartUseCase, logger *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		storefront: storefront,
		carts:      carts,
		log:        logger,
	}
}

func (h *StorefrontHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Home)
	router.GET("/item/:id", h.Item)
	router.POST("/cart/items", h.AddToCart)
	router.POST("/cart/items/:id/remove", h.RemoveFromCart)
	router.POST("/cart/checkout", h.Checkout)
}

func (h *StorefrontHandler) Home(c *gin.Context) {
	page, err := h.storefront.LoadPage(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load storefront: %v", err)
		h.renderError(c, mapErrorToStatus(err), "The store is unavailable right now.")
		return
	}

	view, err := h.carts.GetCart(c.Request.Context(), cartSession(c))
	if err != nil {
		h.log.Warnf("Failed to load cart for storefront: %v", err)
		view = &usecase.CartView{}
	}

	title := page.SEO.TitleTag
	if title == "" {
		title = page.Store.StoreName
	}
	description := page.SEO.MetaDescription
	if description == "" {
		description = page.Store.SEODescription
	}

	h.render(c, http.StatusOK, "home", homeView{
		Head:     headView{Title: title, Description: description, SEO: page.SEO},
		Page:     page,
		Cart:     view,
		Contact:  newContactView(page.Store),
		ShowCart: c.Query("showCart") == "1",
	})
}

func (h *StorefrontHandler) Item(c *gin.Context) {
	id := c.Param("id")

	page, err := h.storefront.LoadProductPage(c.Request.Context(), id)
	if err != nil {
		status := mapErrorToStatus(err)
		h.log.Warnf("Failed to load product page %s: %v", id, err)
		if status == http.StatusNotFound {
			h.renderError(c, status, "Product not found.")
			return
		}
		h.renderError(c, status, "The store is unavailable right now.")
		return
	}

	title := page.Product.SEOTitle
	if title == "" {
		title = page.Product.Title
	}
	description := page.Product.SEODescription
	if description == "" {
		description = page.Product.Subtitle
	}
	images := page.Product.Images
	if len(images) == 0 {
		images = []string{domain.PlaceholderImage}
	}

	h.render(c, http.StatusOK, "item", itemView{
		Head:   headView{Title: title, Description: description, SEO: page.SEO},
		Page:   page,
		Images: images,
	})
}

// AddToCart handles the detail page form and sends the shopper back home
// with the cart panel open.
func (h *StorefrontHandler) AddToCart(c *gin.Context) {
	productID := c.PostForm("productId")
	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		quantity = 1
	}

	if _, err := h.carts.AddItem(c.Request.Context(), cartSession(c), productID, quantity); err != nil {
		status := mapErrorToStatus(err)
		h.log.Warnf("Failed to add product %s from form: %v", productID, err)
		h.renderError(c, status, "Could not add the product to your cart.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/?showCart=1")
}

func (h *StorefrontHandler) RemoveFromCart(c *gin.Context) {
	productID := c.Param("id")
	if _, err := h.carts.RemoveItem(c.Request.Context(), cartSession(c), productID); err != nil {
		h.log.Warnf("Failed to remove product %s from form: %v", productID, err)
		h.renderError(c, mapErrorToStatus(err), "Could not update your cart.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/?showCart=1")
}

// Checkout places the order from the cart panel form and hands the
// shopper over to WhatsApp with the order message filled in.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	details := cart.OrderDetails{
		CustomerName:  c.PostForm("customerName"),
		Address:       c.PostForm("address"),
		PaymentMethod: c.PostForm("paymentMethod"),
		Notes:         c.PostForm("notes"),
	}

	result, err := h.carts.Checkout(c.Request.Context(), cartSession(c), details)
	if err != nil {
		status := mapErrorToStatus(err)
		h.log.Warnf("Failed to check out from form: %v", err)
		if status == http.StatusBadRequest {
			h.renderError(c, status, "Please add products to your cart and enter your name.")
			return
		}
		h.renderError(c, status, "Could not place your order.")
		return
	}

	c.Redirect(http.StatusSeeOther, result.WhatsAppURL)
}

func (h *StorefrontHandler) render(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Errorf("Failed to render template %s: %v", name, err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *StorefrontHandler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error", errorView{Status: status, Message: message})
}

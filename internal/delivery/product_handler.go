package delivery

import (
	"bytes"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "Title", "Subtitle", "Price", "Category", "Images", "SEOTitle", "SEODescription",
}

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
	}
}

func (h *ProductHandler) RegisterAdminRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/export", h.ExportProducts)
		products.GET("/:id", h.GetProductByID)
		products.PATCH("/:id", h.UpdateProduct)
		products.PATCH("/:id/seo", h.UpdateProductSEO)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product domain.ProductRecord
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", product.Title, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	h.log.Infof("Product created successfully: ID %s, Title %s", created.ID, created.Title)
	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for update product ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: no fields provided for update")
		return
	}

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), id, updates)
	if err != nil {
		h.log.Errorf("Failed to update product ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	h.log.Infof("Product updated successfully: ID %s", updated.ID)
	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

type seoRequest struct {
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
}

func (h *ProductHandler) UpdateProductSEO(c *gin.Context) {
	id := c.Param("id")

	var req seoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for product SEO ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.UpdateProductSEO(c.Request.Context(), id, req.SEOTitle, req.SEODescription)
	if err != nil {
		h.log.Errorf("Failed to update SEO for product ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product SEO: "+err.Error())
		return
	}

	h.log.Infof("Product SEO updated successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Product SEO updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete product ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	h.log.Infof("Product deleted successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

// ListProducts answers every product, or those of one category when the
// category query parameter is set.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var (
		products []domain.ProductRecord
		err      error
	)
	if categoryID := c.Query("category"); categoryID != "" {
		products, err = h.useCase.ListProductsByCategory(c.Request.Context(), categoryID)
	} else {
		products, err = h.useCase.ListProducts(c.Request.Context())
	}
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to list products: "+err.Error())
		return
	}
	if products == nil {
		products = []domain.ProductRecord{}
	}

	SuccessResponse(c, http.StatusOK, "Products listed successfully", products)
}

// ExportProducts streams the product list as an xlsx workbook.
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to fetch products for export: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch products: "+err.Error())
		return
	}

	file, err := productWorkbook(products)
	if err != nil {
		h.log.Errorf("Failed to build product workbook: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to create Excel sheet")
		return
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		h.log.Errorf("Failed to write product workbook: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}

	h.log.Infof("Exported %d products", len(products))
	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func productWorkbook(products []domain.ProductRecord) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Title)
		row.AddCell().SetString(p.Subtitle)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetString(p.SEOTitle)
		row.AddCell().SetString(p.SEODescription)
	}
	return file, nil
}

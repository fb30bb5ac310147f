package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"storefront/internal/catalog"
	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	MaxSEOTitleLength       = 60
	MaxSEODescriptionLength = 160
)

type ProductUseCase interface {
	CreateProduct(ctx context.Context, product *domain.ProductRecord) (*domain.ProductRecord, error)
	GetProductByID(ctx context.Context, id string) (*domain.ProductRecord, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.ProductRecord, error)
	UpdateProductSEO(ctx context.Context, id, seoTitle, seoDescription string) (*domain.ProductRecord, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]domain.ProductRecord, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.ProductRecord, error)
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, product *domain.ProductRecord) (*domain.ProductRecord, error) {
	product.Title = strings.TrimSpace(product.Title)
	product.Category = strings.TrimSpace(product.Category)
	product.Images = cleanImages(product.Images)

	if product.Title == "" {
		uc.log.Warn("Use Case: Attempted to create product with empty title")
		return nil, fmt.Errorf("product title cannot be empty: %w", domain.ErrInvalidInput)
	}
	if product.Price < 0 {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with negative price: %f", product.Title, product.Price)
		return nil, fmt.Errorf("product price cannot be negative: %w", domain.ErrInvalidInput)
	}
	if err := checkSEOLengths(product.SEOTitle, product.SEODescription); err != nil {
		uc.log.Warnf("Use Case: Product '%s' has SEO fields that are too long: %v", product.Title, err)
		return nil, err
	}
	if err := uc.ensureCategory(ctx, product.Category); err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", product.Title)
	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Title, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %s", created.Title, created.ID)
	return created, nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id string) (*domain.ProductRecord, error) {
	if strings.TrimSpace(id) == "" {
		uc.log.Warn("Use Case: Attempted to get product with empty ID")
		return nil, fmt.Errorf("invalid product ID: %w", domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %s: %v", id, err)
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update. Keys use the document field names
// (title, subtitle, longDescription, price, images, category, seoTitle,
// seoDescription).
func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.ProductRecord, error) {
	if strings.TrimSpace(id) == "" {
		uc.log.Warn("Use Case: Attempted update with empty product ID")
		return nil, fmt.Errorf("invalid product ID for update: %w", domain.ErrInvalidInput)
	}
	if len(updates) == 0 {
		uc.log.Warnf("Use Case: Attempted update for product ID %s with no fields", id)
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrInvalidInput)
	}

	clean := make(map[string]any, len(updates))
	for key, value := range updates {
		switch key {
		case "title":
			title, ok := value.(string)
			if !ok || strings.TrimSpace(title) == "" {
				return nil, fmt.Errorf("product title cannot be empty: %w", domain.ErrInvalidInput)
			}
			clean[key] = strings.TrimSpace(title)
		case "subtitle", "longDescription":
			text, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %s must be a string: %w", key, domain.ErrInvalidInput)
			}
			clean[key] = text
		case "seoTitle", "seoDescription":
			text, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %s must be a string: %w", key, domain.ErrInvalidInput)
			}
			clean[key] = strings.TrimSpace(text)
		case "price":
			price, ok := numberValue(value)
			if !ok || price < 0 {
				return nil, fmt.Errorf("product price must be a non-negative number: %w", domain.ErrInvalidInput)
			}
			clean[key] = price
		case "images":
			images, ok := stringList(value)
			if !ok {
				return nil, fmt.Errorf("images must be a list of URLs: %w", domain.ErrInvalidInput)
			}
			list := make([]any, 0, len(images))
			for _, img := range cleanImages(images) {
				list = append(list, img)
			}
			clean[key] = list
		case "category":
			categoryID, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("category must be a string: %w", domain.ErrInvalidInput)
			}
			categoryID = strings.TrimSpace(categoryID)
			if err := uc.ensureCategory(ctx, categoryID); err != nil {
				return nil, err
			}
			clean[key] = categoryID
		default:
			uc.log.Warnf("Use Case: Attempted to update unknown product field '%s'", key)
			return nil, fmt.Errorf("unknown product field %q: %w", key, domain.ErrInvalidInput)
		}
	}
	seoTitle, _ := clean["seoTitle"].(string)
	seoDescription, _ := clean["seoDescription"].(string)
	if err := checkSEOLengths(seoTitle, seoDescription); err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to update product ID %s with %d fields", id, len(clean))
	updated, err := uc.productRepo.UpdateProduct(ctx, id, clean)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %s", id)
	return updated, nil
}

func (uc *productUseCase) UpdateProductSEO(ctx context.Context, id, seoTitle, seoDescription string) (*domain.ProductRecord, error) {
	return uc.UpdateProduct(ctx, id, map[string]any{
		"seoTitle":       seoTitle,
		"seoDescription": seoDescription,
	})
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		uc.log.Warn("Use Case: Attempted delete with empty product ID")
		return fmt.Errorf("invalid product ID for delete: %w", domain.ErrInvalidInput)
	}

	uc.log.Infof("Use Case: Attempting to delete product ID %s", id)
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Product deleted successfully for ID %s", id)
	return nil
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.ProductRecord, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *productUseCase) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.ProductRecord, error) {
	products, err := uc.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.IndexByCategory(products)[categoryID], nil
}

func (uc *productUseCase) ensureCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	if _, err := uc.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Errorf("Use Case: Could not check category ID %s: %v", categoryID, err)
			return err
		}
		uc.log.Warnf("Use Case: Category ID %s not found for product", categoryID)
		return fmt.Errorf("category with id %s does not exist: %w", categoryID, domain.ErrInvalidInput)
	}
	return nil
}

func checkSEOLengths(title, description string) error {
	if utf8.RuneCountInString(title) > MaxSEOTitleLength {
		return fmt.Errorf("seoTitle must be at most %d characters: %w", MaxSEOTitleLength, domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(description) > MaxSEODescriptionLength {
		return fmt.Errorf("seoDescription must be at most %d characters: %w", MaxSEODescriptionLength, domain.ErrInvalidInput)
	}
	return nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

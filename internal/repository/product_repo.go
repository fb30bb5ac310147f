package repository

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type documentProductRepository struct {
	store domain.DocumentStore
	log   *logrus.Logger
}

func NewProductRepository(store domain.DocumentStore, logger *logrus.Logger) domain.ProductRepository {
	return &documentProductRepository{
		store: store,
		log:   logger,
	}
}

func (r *documentProductRepository) ListProducts(ctx context.Context) ([]domain.ProductRecord, error) {
	docs, err := r.store.List(ctx, domain.CollectionProducts)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	products := make([]domain.ProductRecord, 0, len(docs))
	for _, doc := range docs {
		products = append(products, catalog.ProductFromDocument(doc))
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *documentProductRepository) GetProductByID(ctx context.Context, id string) (*domain.ProductRecord, error) {
	doc, err := r.store.Get(ctx, domain.CollectionProducts, id)
	if err != nil {
		return nil, fmt.Errorf("could not get product %s: %w", id, err)
	}
	product := catalog.ProductFromDocument(*doc)
	return &product, nil
}

func (r *documentProductRepository) CreateProduct(ctx context.Context, product *domain.ProductRecord) (*domain.ProductRecord, error) {
	doc, err := r.store.Create(ctx, domain.CollectionProducts, catalog.ProductFields(*product))
	if err != nil {
		r.log.Errorf("Failed to create product '%s': %v", product.Title, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	created := *product
	created.ID = doc.ID
	r.log.Infof("Product created successfully with ID: %s, Title: %s", created.ID, created.Title)
	return &created, nil
}

// UpdateProduct merges the given document fields and returns the stored
// result.
func (r *documentProductRepository) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.ProductRecord, error) {
	if len(updates) == 0 {
		return r.GetProductByID(ctx, id)
	}
	if err := r.store.Update(ctx, domain.CollectionProducts, id, updates); err != nil {
		r.log.Errorf("Failed to update product ID %s: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	r.log.Infof("Product updated successfully with ID: %s", id)
	return r.GetProductByID(ctx, id)
}

func (r *documentProductRepository) DeleteProduct(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, domain.CollectionProducts, id); err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return nil
}

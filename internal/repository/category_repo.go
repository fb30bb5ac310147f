package repository

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type documentCategoryRepository struct {
	store domain.DocumentStore
	log   *logrus.Logger
}

func NewCategoryRepository(store domain.DocumentStore, logger *logrus.Logger) domain.CategoryRepository {
	return &documentCategoryRepository{
		store: store,
		log:   logger,
	}
}

func (r *documentCategoryRepository) ListCategories(ctx context.Context) ([]domain.CategoryRecord, error) {
	docs, err := r.store.List(ctx, domain.CollectionCategories)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	categories := make([]domain.CategoryRecord, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, catalog.CategoryFromDocument(doc))
	}
	r.log.Debugf("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *documentCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.CategoryRecord, error) {
	doc, err := r.store.Get(ctx, domain.CollectionCategories, id)
	if err != nil {
		return nil, fmt.Errorf("could not get category %s: %w", id, err)
	}
	category := catalog.CategoryFromDocument(*doc)
	return &category, nil
}

func (r *documentCategoryRepository) CreateCategory(ctx context.Context, category *domain.CategoryRecord) (*domain.CategoryRecord, error) {
	doc, err := r.store.Create(ctx, domain.CollectionCategories, catalog.CategoryFields(*category))
	if err != nil {
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	created := *category
	created.ID = doc.ID
	r.log.Infof("Category created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return &created, nil
}

func (r *documentCategoryRepository) UpdateCategory(ctx context.Context, category *domain.CategoryRecord) (*domain.CategoryRecord, error) {
	if err := r.store.Update(ctx, domain.CollectionCategories, category.ID, catalog.CategoryFields(*category)); err != nil {
		r.log.Errorf("Failed to update category ID %s: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	r.log.Infof("Category updated successfully with ID: %s", category.ID)
	updated := *category
	return &updated, nil
}

func (r *documentCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, domain.CollectionCategories, id); err != nil {
		r.log.Errorf("Failed to delete category ID %s: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}
	r.log.Infof("Category deleted successfully with ID: %s", id)
	return nil
}

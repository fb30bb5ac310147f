package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	CreateCategory(ctx context.Context, category *domain.CategoryRecord) (*domain.CategoryRecord, error)
	GetCategoryByID(ctx context.Context, id string) (*domain.CategoryRecord, error)
	UpdateCategory(ctx context.Context, category *domain.CategoryRecord) (*domain.CategoryRecord, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.CategoryRecord, error)
	CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, category *domain.CategoryRecord) (*domain.CategoryRecord, error) {
	normalizeCategory(category)
	if category.Name == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty name")
		return nil, fmt.Errorf("category name cannot be empty: %w", domain.ErrInvalidInput)
	}

	if category.ParentID != "" {
		existing, err := uc.categoryRepo.ListCategories(ctx)
		if err != nil {
			uc.log.Errorf("Use Case: Could not load categories to check parent '%s': %v", category.ParentID, err)
			return nil, err
		}
		if !containsCategory(existing, category.ParentID) {
			uc.log.Warnf("Use Case: Parent category %s not found during category creation", category.ParentID)
			return nil, fmt.Errorf("parent category %s does not exist: %w", category.ParentID, domain.ErrInvalidInput)
		}
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", category.Name)
	created, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id string) (*domain.CategoryRecord, error) {
	if strings.TrimSpace(id) == "" {
		uc.log.Warn("Use Case: Attempted to get category with empty ID")
		return nil, fmt.Errorf("invalid category ID: %w", domain.ErrInvalidInput)
	}

	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %s: %v", id, err)
		return nil, err
	}
	return category, nil
}

// UpdateCategory rejects changes that would add a self-parent or a cycle to
// the stored forest. Problems already present in stored data do not block
// unrelated edits.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, category *domain.CategoryRecord) (*domain.CategoryRecord, error) {
	normalizeCategory(category)
	if category.ID == "" {
		uc.log.Warn("Use Case: Attempted update with empty ID")
		return nil, fmt.Errorf("invalid category ID for update: %w", domain.ErrInvalidInput)
	}
	if category.Name == "" {
		uc.log.Warnf("Use Case: Attempted update for ID %s with empty name", category.ID)
		return nil, fmt.Errorf("category name cannot be empty for update: %w", domain.ErrInvalidInput)
	}

	existing, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Could not load categories to validate update of %s: %v", category.ID, err)
		return nil, err
	}
	if !containsCategory(existing, category.ID) {
		uc.log.Warnf("Use Case: Category ID %s not found for update", category.ID)
		return nil, fmt.Errorf("category %s: %w", category.ID, domain.ErrNotFound)
	}
	if category.ParentID != "" && !containsCategory(existing, category.ParentID) {
		uc.log.Warnf("Use Case: Parent category %s not found during update of %s", category.ParentID, category.ID)
		return nil, fmt.Errorf("parent category %s does not exist: %w", category.ParentID, domain.ErrInvalidInput)
	}

	proposed := make([]domain.CategoryRecord, len(existing))
	for i, rec := range existing {
		if rec.ID == category.ID {
			rec = *category
		}
		proposed[i] = rec
	}
	if introduced := newViolations(catalog.Validate(existing), catalog.Validate(proposed)); len(introduced) > 0 {
		uc.log.Warnf("Use Case: Rejected update of category %s: %v", category.ID, introduced[0])
		return nil, errors.Join(introduced...)
	}

	uc.log.Infof("Use Case: Attempting to update category ID %s", category.ID)
	updated, err := uc.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %s: %v", category.ID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %s", updated.ID)
	return updated, nil
}

// DeleteCategory leaves children in place; they render as roots afterwards.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		uc.log.Warn("Use Case: Attempted delete with empty ID")
		return fmt.Errorf("invalid category ID for delete: %w", domain.ErrInvalidInput)
	}

	uc.log.Infof("Use Case: Attempting to delete category ID %s", id)
	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %s", id)
	return nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]domain.CategoryRecord, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}

func (uc *categoryUseCase) CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	categories, err := uc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	logViolations(uc.log, categories)
	return catalog.BuildTree(categories), nil
}

func normalizeCategory(c *domain.CategoryRecord) {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.ParentID = strings.TrimSpace(c.ParentID)
}

func containsCategory(records []domain.CategoryRecord, id string) bool {
	for _, rec := range records {
		if rec.ID == id {
			return true
		}
	}
	return false
}

func newViolations(before, after []error) []error {
	seen := make(map[string]bool, len(before))
	for _, err := range before {
		seen[err.Error()] = true
	}
	var introduced []error
	for _, err := range after {
		if !seen[err.Error()] {
			introduced = append(introduced, err)
		}
	}
	return introduced
}

// logViolations reports degenerate stored categories without failing the read.
func logViolations(log *logrus.Logger, categories []domain.CategoryRecord) {
	for _, err := range catalog.Validate(categories) {
		log.Warnf("Use Case: Stored categories are inconsistent: %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// StorefrontPage is everything the home page shows.
type StorefrontPage struct {
	Store    domain.StoreInfo
	Design   domain.DesignConfig
	SEO      domain.SEOHome
	Forest   []*domain.CategoryNode
	Sections []catalog.Section
	OpenNow  bool
}

// ProductPage backs the product detail view.
type ProductPage struct {
	Product domain.ProductRecord
	Store   domain.StoreInfo
	SEO     domain.SEOHome
}

type StorefrontUseCase interface {
	LoadPage(ctx context.Context) (*StorefrontPage, error)
	LoadProductPage(ctx context.Context, productID string) (*ProductPage, error)
}

type storefrontUseCase struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	stores       StoreUseCase
	log          *logrus.Logger
	now          func() time.Time
}

func NewStorefrontUseCase(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, stores StoreUseCase, logger *logrus.Logger) StorefrontUseCase {
	return &storefrontUseCase{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		stores:       stores,
		log:          logger,
		now:          time.Now,
	}
}

// LoadPage fetches catalog and store documents concurrently, then builds
// the category forest and walks it.
func (uc *storefrontUseCase) LoadPage(ctx context.Context) (*StorefrontPage, error) {
	var (
		categories []domain.CategoryRecord
		products   []domain.ProductRecord
		info       *domain.StoreInfo
		design     *domain.DesignConfig
		seo        *domain.SEOHome
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = uc.categoryRepo.ListCategories(ctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.productRepo.ListProducts(ctx)
		return err
	})
	g.Go(func() (err error) {
		info, err = uc.stores.GetStoreInfo(ctx)
		return err
	})
	g.Go(func() (err error) {
		design, err = uc.stores.GetDesignConfig(ctx)
		return err
	})
	g.Go(func() (err error) {
		seo, err = uc.stores.GetSEOHome(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.log.Errorf("Use Case: Failed to load storefront data: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	logViolations(uc.log, categories)
	forest := catalog.BuildTree(categories)
	sections := catalog.Render(forest, catalog.IndexByCategory(products))

	uc.log.Infof("Use Case: Storefront built with %d categories, %d products and %d sections",
		len(categories), len(products), len(sections))
	return &StorefrontPage{
		Store:    *info,
		Design:   *design,
		SEO:      *seo,
		Forest:   forest,
		Sections: sections,
		OpenNow:  info.IsOpenAt(uc.now()),
	}, nil
}

func (uc *storefrontUseCase) LoadProductPage(ctx context.Context, productID string) (*ProductPage, error) {
	var (
		product *domain.ProductRecord
		info    *domain.StoreInfo
		seo     *domain.SEOHome
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		product, err = uc.productRepo.GetProductByID(ctx, productID)
		return err
	})
	g.Go(func() (err error) {
		info, err = uc.stores.GetStoreInfo(ctx)
		return err
	})
	g.Go(func() (err error) {
		seo, err = uc.stores.GetSEOHome(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Product %s not found for detail page", productID)
			return nil, err
		}
		uc.log.Errorf("Use Case: Failed to load product page %s: %v", productID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	return &ProductPage{Product: *product, Store: *info, SEO: *seo}, nil
}

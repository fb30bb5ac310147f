package repository

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestCategoryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(NewMemoryDocumentStore(), nullLogger())

	root, err := repo.CreateCategory(ctx, &domain.CategoryRecord{Name: "Electronics"})
	require.NoError(t, err)
	child, err := repo.CreateCategory(ctx, &domain.CategoryRecord{Name: "Cards", ParentID: root.ID})
	require.NoError(t, err)

	list, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, *root, list[0])
	assert.Equal(t, *child, list[1])

	child.ParentID = ""
	child.Description = "now a root"
	_, err = repo.UpdateCategory(ctx, child)
	require.NoError(t, err)

	got, err := repo.GetCategoryByID(ctx, child.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRoot())
	assert.Equal(t, "now a root", got.Description)

	require.NoError(t, repo.DeleteCategory(ctx, child.ID))
	_, err = repo.GetCategoryByID(ctx, child.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteCategory(ctx, child.ID), domain.ErrNotFound)
}

func TestCategoryRepository_UpdateMissing(t *testing.T) {
	repo := NewCategoryRepository(NewMemoryDocumentStore(), nullLogger())
	_, err := repo.UpdateCategory(context.Background(), &domain.CategoryRecord{ID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewMemoryDocumentStore(), nullLogger())

	created, err := repo.CreateProduct(ctx, &domain.ProductRecord{
		Title:    "GPU",
		Price:    100,
		Images:   []string{"gpu.png"},
		Category: "c1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := repo.UpdateProduct(ctx, created.ID, map[string]any{"seoTitle": "Fast GPU", "price": 120.0})
	require.NoError(t, err)
	assert.Equal(t, "Fast GPU", updated.SEOTitle)
	assert.Equal(t, 120.0, updated.Price)
	assert.Equal(t, []string{"gpu.png"}, updated.Images)

	unchanged, err := repo.UpdateProduct(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	list, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *updated, list[0])

	require.NoError(t, repo.DeleteProduct(ctx, created.ID))
	_, err = repo.UpdateProduct(ctx, created.ID, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreRepository_MissingDocumentsReadAsZero(t *testing.T) {
	ctx := context.Background()
	repo := NewStoreRepository(NewMemoryDocumentStore(), nullLogger())

	info, err := repo.GetStoreInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StoreInfo{}, *info)

	design, err := repo.GetDesignConfig(ctx)
	require.NoError(t, err)
	assert.Zero(t, design.BannerInterval)

	seo, err := repo.GetSEOHome(ctx)
	require.NoError(t, err)
	assert.Empty(t, seo.TitleTag)
}

func TestStoreRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewStoreRepository(NewMemoryDocumentStore(), nullLogger())

	info := &domain.StoreInfo{
		StoreName: "Shop",
		WhatsApp:  "+54 911 1234",
		Schedule: domain.WeeklySchedule{
			Monday: domain.DayHours{Open: "09:00", Close: "18:00"},
		},
		SocialLinks: []domain.SocialLink{{Label: "ig", URL: "https://instagram.com/shop"}},
	}
	require.NoError(t, repo.SaveStoreInfo(ctx, info))
	got, err := repo.GetStoreInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, info, got)

	design := &domain.DesignConfig{BannerImages: []domain.BannerImage{{URL: "b.png"}}, BannerInterval: 8}
	require.NoError(t, repo.SaveDesignConfig(ctx, design))
	gotDesign, err := repo.GetDesignConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, design, gotDesign)

	seo := &domain.SEOHome{TitleTag: "Shop", TwitterCard: "summary"}
	require.NoError(t, repo.SaveSEOHome(ctx, seo))
	gotSEO, err := repo.GetSEOHome(ctx)
	require.NoError(t, err)
	assert.Equal(t, seo, gotSEO)
}

func TestStoreRepository_MistypedFieldIsSkipped(t *testing.T) {
	ctx := context.Background()
	docs := NewMemoryDocumentStore()
	logger, hook := test.NewNullLogger()
	repo := NewStoreRepository(docs, logger)

	require.NoError(t, docs.Set(ctx, domain.CollectionStoreInfo, domain.DocDesignConfig, map[string]any{
		"bannerInterval":  "fast",
		"backgroundImage": "bg.png",
	}))

	design, err := repo.GetDesignConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bg.png", design.BackgroundImage)
	assert.Zero(t, design.BannerInterval)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

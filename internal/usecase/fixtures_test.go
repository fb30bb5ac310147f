package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/session"
)

var errStoreDown = errors.New("store is down")

// failingDocumentStore fails every call, standing in for an unreachable
// backend.
type failingDocumentStore struct{}

func (failingDocumentStore) List(context.Context, string) ([]domain.Document, error) {
	return nil, errStoreDown
}

func (failingDocumentStore) Get(context.Context, string, string) (*domain.Document, error) {
	return nil, errStoreDown
}

func (failingDocumentStore) Create(context.Context, string, map[string]any) (*domain.Document, error) {
	return nil, errStoreDown
}

func (failingDocumentStore) Set(context.Context, string, string, map[string]any) error {
	return errStoreDown
}

func (failingDocumentStore) Update(context.Context, string, string, map[string]any) error {
	return errStoreDown
}

func (failingDocumentStore) Delete(context.Context, string, string) error {
	return errStoreDown
}

type fixture struct {
	log        *logrus.Logger
	hook       *test.Hook
	docs       domain.DocumentStore
	categories domain.CategoryRepository
	products   domain.ProductRepository
	storeRepo  domain.StoreRepository
	carts      domain.CartStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, repository.NewMemoryDocumentStore())
}

func newFixtureWithStore(t *testing.T, docs domain.DocumentStore) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return &fixture{
		log:        logger,
		hook:       hook,
		docs:       docs,
		categories: repository.NewCategoryRepository(docs, logger),
		products:   repository.NewProductRepository(docs, logger),
		storeRepo:  repository.NewStoreRepository(docs, logger),
		carts:      session.NewMemoryCartStore(),
	}
}

func (f *fixture) categoryUseCase() CategoryUseCase {
	return NewCategoryUseCase(f.categories, f.log)
}

func (f *fixture) productUseCase() ProductUseCase {
	return NewProductUseCase(f.products, f.categories, f.log)
}

func (f *fixture) storeUseCase() StoreUseCase {
	return NewStoreUseCase(f.storeRepo, f.log)
}

// seedCategory writes a category straight into the document store,
// bypassing use-case validation.
func (f *fixture) seedCategory(t *testing.T, id, name, parent string) {
	t.Helper()
	fields := map[string]any{"name": name, "parentId": nil}
	if parent != "" {
		fields["parentId"] = parent
	}
	require.NoError(t, f.docs.Set(context.Background(), domain.CollectionCategories, id, fields))
}

func (f *fixture) seedProduct(t *testing.T, id, category, title string, price float64) {
	t.Helper()
	require.NoError(t, f.docs.Set(context.Background(), domain.CollectionProducts, id, map[string]any{
		"title":    title,
		"category": category,
		"price":    price,
		"images":   []any{title + ".png"},
	}))
}

func (f *fixture) warnings() []string {
	var out []string
	for _, entry := range f.hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			out = append(out, entry.Message)
		}
	}
	return out
}

package domain

import "context"

// Collection and document names used by the storefront.
const (
	CollectionCategories = "categories"
	CollectionProducts   = "products"
	CollectionStoreInfo  = "storeInfo"

	DocStoreInfo    = "main"
	DocDesignConfig = "designConfig"
	DocSEOHome      = "seoHome"
)

// Document is a schemaless record as the store hands it out. Fields are
// coerced into typed records before they reach catalog or cart code.
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// DocumentStore is the data source behind every repository. List returns
// documents in the store's natural order, which for the SQL and memory
// backends is insertion order.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (*Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

package domain

import "context"

// PlaceholderImage is shown for products without any image.
const PlaceholderImage = "https://via.placeholder.com/100"

type ProductRecord struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle"`
	LongDescription string   `json:"longDescription,omitempty"`
	Price           float64  `json:"price"`
	Images          []string `json:"images"`
	Category        string   `json:"category"`
	SEOTitle        string   `json:"seoTitle,omitempty"`
	SEODescription  string   `json:"seoDescription,omitempty"`
}

func (p ProductRecord) Thumbnail() string {
	if len(p.Images) == 0 {
		return PlaceholderImage
	}
	return p.Images[0]
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]ProductRecord, error)
	GetProductByID(ctx context.Context, id string) (*ProductRecord, error)
	CreateProduct(ctx context.Context, product *ProductRecord) (*ProductRecord, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]any) (*ProductRecord, error)
	DeleteProduct(ctx context.Context, id string) error
}

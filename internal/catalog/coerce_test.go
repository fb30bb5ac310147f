package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func TestCategoryFromDocument(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   domain.CategoryRecord
	}{
		{
			name:   "full record",
			fields: map[string]any{"name": "Cards", "description": "GPUs", "parentId": "root1"},
			want:   domain.CategoryRecord{ID: "c1", Name: "Cards", Description: "GPUs", ParentID: "root1"},
		},
		{
			name:   "null parent is a root",
			fields: map[string]any{"name": "Top", "parentId": nil},
			want:   domain.CategoryRecord{ID: "c1", Name: "Top"},
		},
		{
			name:   "missing fields",
			fields: map[string]any{},
			want:   domain.CategoryRecord{ID: "c1"},
		},
		{
			name:   "non-string parent ignored",
			fields: map[string]any{"name": "Odd", "parentId": 42.0},
			want:   domain.CategoryRecord{ID: "c1", Name: "Odd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryFromDocument(domain.Document{ID: "c1", Fields: tt.fields})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductFromDocument_Price(t *testing.T) {
	tests := []struct {
		name  string
		price any
		want  float64
	}{
		{"float", 99.5, 99.5},
		{"int64", int64(100), 100},
		{"json number", json.Number("12.25"), 12.25},
		{"numeric string", " 7 ", 7},
		{"garbage string", "free", 0},
		{"negative", -3.0, 0},
		{"missing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]any{"title": "X"}
			if tt.price != nil {
				fields["price"] = tt.price
			}
			got := ProductFromDocument(domain.Document{ID: "p", Fields: fields})
			assert.Equal(t, tt.want, got.Price)
		})
	}
}

func TestProductFromDocument_Images(t *testing.T) {
	got := ProductFromDocument(domain.Document{ID: "p", Fields: map[string]any{
		"images": []any{"a.png", "", 3, "b.png"},
	}})
	assert.Equal(t, []string{"a.png", "b.png"}, got.Images)
	assert.Equal(t, "a.png", got.Thumbnail())

	legacy := ProductFromDocument(domain.Document{ID: "p", Fields: map[string]any{"image": "old.png"}})
	assert.Equal(t, []string{"old.png"}, legacy.Images)

	none := ProductFromDocument(domain.Document{ID: "p", Fields: map[string]any{}})
	assert.Empty(t, none.Images)
	assert.Equal(t, domain.PlaceholderImage, none.Thumbnail())
}

func TestFieldsRoundTrip(t *testing.T) {
	c := domain.CategoryRecord{ID: "c", Name: "N", Description: "D", ParentID: "p"}
	assert.Equal(t, c, CategoryFromDocument(domain.Document{ID: "c", Fields: CategoryFields(c)}))

	root := domain.CategoryRecord{ID: "r", Name: "Root"}
	assert.Nil(t, CategoryFields(root)["parentId"])

	p := domain.ProductRecord{ID: "p", Title: "T", Price: 3.5, Images: []string{"i"}, Category: "c", SEOTitle: "s"}
	assert.Equal(t, p, ProductFromDocument(domain.Document{ID: "p", Fields: ProductFields(p)}))
}

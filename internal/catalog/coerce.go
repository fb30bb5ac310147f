package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// CategoryFromDocument coerces a stored category document into a record.
// A null, missing or non-string parentId yields a root.
func CategoryFromDocument(doc domain.Document) domain.CategoryRecord {
	return domain.CategoryRecord{
		ID:          doc.ID,
		Name:        StringField(doc.Fields, "name"),
		Description: StringField(doc.Fields, "description"),
		ParentID:    strings.TrimSpace(StringField(doc.Fields, "parentId")),
	}
}

// CategoryFields is the document form of a category.
func CategoryFields(c domain.CategoryRecord) map[string]any {
	fields := map[string]any{
		"name":        c.Name,
		"description": c.Description,
		"parentId":    nil,
	}
	if c.ParentID != "" {
		fields["parentId"] = c.ParentID
	}
	return fields
}

// ProductFromDocument coerces a stored product document into a record. A
// negative or unparsable price becomes 0 and a legacy single "image" field
// is used when "images" is empty.
func ProductFromDocument(doc domain.Document) domain.ProductRecord {
	images := StringSliceField(doc.Fields, "images")
	if len(images) == 0 {
		if legacy := StringField(doc.Fields, "image"); legacy != "" {
			images = []string{legacy}
		}
	}
	return domain.ProductRecord{
		ID:              doc.ID,
		Title:           StringField(doc.Fields, "title"),
		Subtitle:        StringField(doc.Fields, "subtitle"),
		LongDescription: StringField(doc.Fields, "longDescription"),
		Price:           nonNegative(FloatField(doc.Fields, "price")),
		Images:          images,
		Category:        StringField(doc.Fields, "category"),
		SEOTitle:        StringField(doc.Fields, "seoTitle"),
		SEODescription:  StringField(doc.Fields, "seoDescription"),
	}
}

// ProductFields is the document form of a product.
func ProductFields(p domain.ProductRecord) map[string]any {
	images := make([]any, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img)
	}
	return map[string]any{
		"title":           p.Title,
		"subtitle":        p.Subtitle,
		"longDescription": p.LongDescription,
		"price":           p.Price,
		"images":          images,
		"category":        p.Category,
		"seoTitle":        p.SEOTitle,
		"seoDescription":  p.SEODescription,
	}
}

func StringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// FloatField reads a number that may have been stored as a float, an
// integer or a numeric string. Anything else reads as 0.
func FloatField(fields map[string]any, key string) float64 {
	var f float64
	switch v := fields[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func IntField(fields map[string]any, key string) int {
	return int(FloatField(fields, key))
}

// StringSliceField keeps the non-empty strings of a list field.
func StringSliceField(fields map[string]any, key string) []string {
	out := []string{}
	switch v := fields[key].(type) {
	case []string:
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

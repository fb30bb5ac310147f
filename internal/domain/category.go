package domain

import "context"

type CategoryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId,omitempty"` // empty for a root
}

// IsRoot reports whether the record carries no parent reference at all.
// Records pointing at an unknown parent are also roots, but only the tree
// builder can tell.
func (c CategoryRecord) IsRoot() bool {
	return c.ParentID == ""
}

// CategoryNode is one vertex of the category forest. Children are owned by
// the node and keep the order of the flat input.
type CategoryNode struct {
	CategoryRecord
	Children []*CategoryNode `json:"children"`
}

func (n *CategoryNode) IsLeaf() bool {
	return len(n.Children) == 0
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]CategoryRecord, error)
	GetCategoryByID(ctx context.Context, id string) (*CategoryRecord, error)
	CreateCategory(ctx context.Context, category *CategoryRecord) (*CategoryRecord, error)
	UpdateCategory(ctx context.Context, category *CategoryRecord) (*CategoryRecord, error)
	DeleteCategory(ctx context.Context, id string) error
}

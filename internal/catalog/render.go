package catalog

import (
	"iter"
	"slices"

	"storefront/internal/domain"
)

// maxHeadingLevel is the smallest HTML heading; deeper categories reuse it.
const maxHeadingLevel = 6

// Section is one step of the storefront walk: a category heading and, for
// leaf categories, the products listed under it.
type Section struct {
	Depth    int
	Category domain.CategoryRecord
	Leaf     bool
	Products []domain.ProductRecord
}

// HeadingLevel maps depth to an HTML heading level, roots being h1.
func (s Section) HeadingLevel() int {
	return min(s.Depth+1, maxHeadingLevel)
}

// ProductIndex maps a category id to its products in input order.
type ProductIndex map[string][]domain.ProductRecord

func IndexByCategory(products []domain.ProductRecord) ProductIndex {
	index := make(ProductIndex)
	for _, p := range products {
		index[p.Category] = append(index[p.Category], p)
	}
	return index
}

// Sections walks the forest depth first, yielding each node before its
// children. Only leaves carry products; products mapped to a category that
// has children are not listed. A node reached twice is skipped, which keeps
// self-parents and cycles from looping forever.
func Sections(forest []*domain.CategoryNode, index ProductIndex) iter.Seq[Section] {
	return func(yield func(Section) bool) {
		visited := make(map[*domain.CategoryNode]bool)

		var walk func(node *domain.CategoryNode, depth int) bool
		walk = func(node *domain.CategoryNode, depth int) bool {
			if visited[node] {
				return true
			}
			visited[node] = true

			section := Section{
				Depth:    depth,
				Category: node.CategoryRecord,
				Leaf:     node.IsLeaf(),
			}
			if section.Leaf {
				section.Products = index[node.ID]
			}
			if !yield(section) {
				return false
			}
			for _, child := range node.Children {
				if !walk(child, depth+1) {
					return false
				}
			}
			return true
		}

		for _, root := range forest {
			if !walk(root, 0) {
				return
			}
		}
	}
}

// Render collects the full walk.
func Render(forest []*domain.CategoryNode, index ProductIndex) []Section {
	return slices.Collect(Sections(forest, index))
}

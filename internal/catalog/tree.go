// Package catalog turns flat category and product records into the nested
// storefront layout.
package catalog

import "storefront/internal/domain"

// BuildTree links a flat list of category records into a forest.
//
// Every record gets a fresh node. A record whose parent id resolves to a
// known record is appended to that node's children, anything else (no
// parent, or a parent that does not exist) becomes a root. Children and
// roots keep input order. When two records share an id the later one is the
// one parents resolve to; both still appear in the forest. BuildTree never
// fails, so degenerate input (self-parents, cycles) must be rejected
// upstream with Validate.
func BuildTree(records []domain.CategoryRecord) []*domain.CategoryNode {
	byID := make(map[string]*domain.CategoryNode, len(records))
	nodes := make([]*domain.CategoryNode, len(records))
	for i, rec := range records {
		node := &domain.CategoryNode{
			CategoryRecord: rec,
			Children:       []*domain.CategoryNode{},
		}
		byID[rec.ID] = node
		nodes[i] = node
	}

	roots := make([]*domain.CategoryNode, 0)
	for _, node := range nodes {
		if node.ParentID != "" {
			if parent, ok := byID[node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Count returns the number of distinct nodes reachable from the forest.
func Count(forest []*domain.CategoryNode) int {
	seen := make(map[*domain.CategoryNode]struct{})
	var visit func(nodes []*domain.CategoryNode)
	visit = func(nodes []*domain.CategoryNode) {
		for _, n := range nodes {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			visit(n.Children)
		}
	}
	visit(forest)
	return len(seen)
}

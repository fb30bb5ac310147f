package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func cat(id, name, parent string) domain.CategoryRecord {
	return domain.CategoryRecord{ID: id, Name: name, ParentID: parent}
}

func childIDs(n *domain.CategoryNode) []string {
	ids := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestBuildTree_Empty(t *testing.T) {
	forest := BuildTree(nil)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
	assert.Equal(t, 0, Count(forest))
}

func TestBuildTree_EveryRecordReachableOnce(t *testing.T) {
	records := []domain.CategoryRecord{
		cat("a", "A", ""),
		cat("b", "B", "a"),
		cat("c", "C", "b"),
		cat("d", "D", "a"),
		cat("e", "E", "missing"),
		cat("f", "F", "e"),
		cat("g", "G", ""),
	}

	forest := BuildTree(records)

	assert.Equal(t, len(records), Count(forest))

	seen := map[string]int{}
	var walk func(nodes []*domain.CategoryNode)
	walk = func(nodes []*domain.CategoryNode) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Children)
		}
	}
	walk(forest)
	for _, r := range records {
		assert.Equal(t, 1, seen[r.ID], "record %s", r.ID)
	}
}

func TestBuildTree_RootPlacement(t *testing.T) {
	forest := BuildTree([]domain.CategoryRecord{
		cat("root", "Root", ""),
		cat("orphan", "Orphan", "nobody"),
		cat("child", "Child", "root"),
	})

	require.Len(t, forest, 2)
	assert.Equal(t, "root", forest[0].ID)
	assert.Equal(t, "orphan", forest[1].ID)
	assert.Equal(t, []string{"child"}, childIDs(forest[0]))
	assert.True(t, forest[1].IsLeaf())
}

func TestBuildTree_ChildBeforeParentInInput(t *testing.T) {
	forest := BuildTree([]domain.CategoryRecord{
		cat("kid", "Kid", "parent"),
		cat("parent", "Parent", ""),
	})

	require.Len(t, forest, 1)
	assert.Equal(t, "parent", forest[0].ID)
	assert.Equal(t, []string{"kid"}, childIDs(forest[0]))
}

func TestBuildTree_PreservesInputOrder(t *testing.T) {
	forest := BuildTree([]domain.CategoryRecord{
		cat("z", "Zeta", ""),
		cat("z3", "Third", "z"),
		cat("a", "Alpha", ""),
		cat("z1", "First", "z"),
		cat("z2", "Second", "z"),
	})

	require.Len(t, forest, 2)
	assert.Equal(t, "z", forest[0].ID)
	assert.Equal(t, "a", forest[1].ID)
	assert.Equal(t, []string{"z3", "z1", "z2"}, childIDs(forest[0]))
}

func TestBuildTree_DuplicateIDResolvesToLastRecord(t *testing.T) {
	forest := BuildTree([]domain.CategoryRecord{
		cat("x", "First X", ""),
		cat("x", "Second X", ""),
		cat("y", "Y", "x"),
	})

	require.Len(t, forest, 2)
	assert.Equal(t, "First X", forest[0].Name)
	assert.True(t, forest[0].IsLeaf())
	assert.Equal(t, "Second X", forest[1].Name)
	assert.Equal(t, []string{"y"}, childIDs(forest[1]))
}

func TestBuildTree_SelfParentIsNotARoot(t *testing.T) {
	forest := BuildTree([]domain.CategoryRecord{
		cat("loop", "Loop", "loop"),
		cat("ok", "Ok", ""),
	})

	require.Len(t, forest, 1)
	assert.Equal(t, "ok", forest[0].ID)
}

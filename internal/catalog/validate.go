package catalog

import (
	"fmt"

	"storefront/internal/domain"
)

// ValidationError describes one record that would make the category
// forest degenerate.
type ValidationError struct {
	CategoryID string
	Problem    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("category %q: %s", e.CategoryID, e.Problem)
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

const (
	ProblemEmptyID    = "empty id"
	ProblemDuplicate  = "duplicate id"
	ProblemSelfParent = "references itself as parent"
	ProblemCycle      = "parent chain forms a cycle"
)

// Validate reports empty ids, duplicate ids, self-parenting records and
// records that sit on a parent cycle. Dangling parents are fine: those
// records become roots.
func Validate(records []domain.CategoryRecord) []error {
	var errs []error
	parents := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			errs = append(errs, &ValidationError{CategoryID: rec.ID, Problem: ProblemEmptyID})
			continue
		}
		if _, dup := parents[rec.ID]; dup {
			errs = append(errs, &ValidationError{CategoryID: rec.ID, Problem: ProblemDuplicate})
		}
		parents[rec.ID] = rec.ParentID
	}

	checked := make(map[string]bool, len(parents))
	for _, rec := range records {
		if rec.ID == "" || checked[rec.ID] {
			continue
		}
		checked[rec.ID] = true

		parent := parents[rec.ID]
		if parent == rec.ID {
			errs = append(errs, &ValidationError{CategoryID: rec.ID, Problem: ProblemSelfParent})
			continue
		}
		if onCycle(rec.ID, parents) {
			errs = append(errs, &ValidationError{CategoryID: rec.ID, Problem: ProblemCycle})
		}
	}
	return errs
}

func onCycle(start string, parents map[string]string) bool {
	visited := map[string]bool{start: true}
	cur := parents[start]
	for cur != "" {
		if cur == start {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		next, ok := parents[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

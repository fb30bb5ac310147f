package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func problems(errs []error) map[string]string {
	out := map[string]string{}
	for _, err := range errs {
		var ve *ValidationError
		if errors.As(err, &ve) {
			out[ve.CategoryID] = ve.Problem
		}
	}
	return out
}

func TestValidate_CleanForest(t *testing.T) {
	errs := Validate([]domain.CategoryRecord{
		cat("a", "A", ""),
		cat("b", "B", "a"),
		cat("c", "C", "gone"),
	})
	assert.Empty(t, errs)
}

func TestValidate_ReportsDegenerateRecords(t *testing.T) {
	errs := Validate([]domain.CategoryRecord{
		cat("a", "A", ""),
		cat("a", "A again", ""),
		cat("self", "Self", "self"),
		cat("p", "P", "q"),
		cat("q", "Q", "p"),
		cat("tail", "Tail", "p"),
		cat("", "Nameless", ""),
	})

	got := problems(errs)
	assert.Equal(t, ProblemDuplicate, got["a"])
	assert.Equal(t, ProblemSelfParent, got["self"])
	assert.Equal(t, ProblemCycle, got["p"])
	assert.Equal(t, ProblemCycle, got["q"])
	assert.Equal(t, ProblemEmptyID, got[""])
	assert.NotContains(t, got, "tail")
}

func TestValidate_ErrorsWrapInvalidInput(t *testing.T) {
	errs := Validate([]domain.CategoryRecord{cat("self", "Self", "self")})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrInvalidInput)
	assert.Contains(t, errs[0].Error(), "self")
}

package errors

import (
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type Categorized interface {
	error
	Category() categories.Category
}

type categorizedError struct {
	err      error
	category categories.Category
}

func (e *categorizedError) Error() string {
	return e.err.Error()
}

func (e *categorizedError) Unwrap() error {
	return e.err
}

func (e *categorizedError) Category() categories.Category {
	return e.category
}

// CategorizedErrorf is xerrors.Errorf plus a category. The outermost category wins.
func CategorizedErrorf(category categories.Category, format string, args ...any) error {
	return &categorizedError{
		err:      xerrors.Errorf(format, args...),
		category: category,
	}
}

// CategoryOf returns the outermost category in the chain, Internal when there is none.
func CategoryOf(err error) categories.Category {
	var categorized Categorized
	if xerrors.As(err, &categorized) {
		return categorized.Category()
	}
	return categories.Internal
}

package shortener

import (
	"strings"

	"github.com/jaevor/go-nanoid"
	"github.com/pkg/errors"
)

// DefaultSlugLength is the length of generated slugs.
const DefaultSlugLength = 5

// SlugGenerator produces random slugs. It gives no uniqueness guarantee.
type SlugGenerator func() string

// NewSlugGenerator returns a generator of lowercase nanoid slugs of the given length.
func NewSlugGenerator(length int) (SlugGenerator, error) {
	gen, err := nanoid.Standard(length)
	if err != nil {
		return nil, errors.Wrapf(err, "create slug generator of length %d", length)
	}

	return func() string {
		return strings.ToLower(gen())
	}, nil
}

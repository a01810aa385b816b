package shortener

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no short link exists for a slug.
	ErrNotFound = errors.New("short link not found")
	// ErrSlugTaken is returned when a slug is already used by another short link.
	ErrSlugTaken = errors.New("slug already used")
)

// Slug is the short, URL-safe identifier of a short link.
type Slug string

// NormalizeSlug trims surrounding whitespace and lowercases a slug.
func NormalizeSlug(raw string) Slug {
	return Slug(strings.ToLower(strings.TrimSpace(raw)))
}

// ShortLink is the persisted slug to URL mapping.
type ShortLink struct {
	ID      string
	Slug    Slug
	URL     string
	Created time.Time
}

// Repository is the persistence layer for short links.
// Implementations must be safe for concurrent use and must reject an insert
// whose slug already exists with ErrSlugTaken.
type Repository interface {
	// EnsureIndexes creates the unique slug constraint. It is idempotent.
	EnsureIndexes(ctx context.Context) error
	FindBySlug(ctx context.Context, slug Slug) (*ShortLink, error)
	// Insert stores the link and returns it with the store-assigned ID.
	Insert(ctx context.Context, link *ShortLink) (*ShortLink, error)
}

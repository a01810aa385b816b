package shortener

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Service creates and resolves short links on top of a Repository.
type Service struct {
	store        Repository
	generateSlug SlugGenerator
	retries      int
	now          func() time.Time
}

// NewService creates a short link service.
// retries is the number of extra attempts made with a fresh slug when a
// generated slug collides with an existing one.
func NewService(store Repository, generator SlugGenerator, retries int) *Service {
	if retries < 0 {
		retries = 0
	}

	return &Service{
		store:        store,
		generateSlug: generator,
		retries:      retries,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the input and stores a new short link.
// A caller-supplied slug that already exists fails with ErrSlugTaken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*ShortLink, error) {
	if err := Validate(in); err != nil {
		return nil, errors.WithStack(err)
	}

	created := in.Created
	if created.IsZero() {
		created = s.now()
	}

	if strings.TrimSpace(in.Slug) == "" {
		return s.createWithGeneratedSlug(ctx, in.URL, created)
	}

	slug := NormalizeSlug(in.Slug)

	_, err := s.store.FindBySlug(ctx, slug)
	if err == nil {
		return nil, errors.WithStack(ErrSlugTaken)
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "find short link")
	}

	return s.insert(ctx, &ShortLink{Slug: slug, URL: in.URL, Created: created})
}

func (s *Service) createWithGeneratedSlug(ctx context.Context, url string, created time.Time) (*ShortLink, error) {
	var err error

	for attempt := 0; attempt <= s.retries; attempt++ {
		var link *ShortLink

		link, err = s.insert(ctx, &ShortLink{
			Slug:    NormalizeSlug(s.generateSlug()),
			URL:     url,
			Created: created,
		})
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
	}

	return nil, err
}

// insert relies on the store's unique constraint to settle races between
// the existence check and the write.
func (s *Service) insert(ctx context.Context, link *ShortLink) (*ShortLink, error) {
	stored, err := s.store.Insert(ctx, link)
	if err != nil {
		return nil, errors.Wrap(err, "insert short link")
	}

	return stored, nil
}

// Resolve returns the short link for a slug, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, slug string) (*ShortLink, error) {
	link, err := s.store.FindBySlug(ctx, NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "find short link")
	}

	return link, nil
}

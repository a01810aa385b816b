package shortener_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMock = errors.New("mock error")

// mockRepository is a test double for shortener.Repository that can be configured to return errors.
type mockRepository struct {
	findErr   error
	insertErr error
	inserted  []*shortener.ShortLink
}

func (m *mockRepository) EnsureIndexes(_ context.Context) error {
	return nil
}

func (m *mockRepository) FindBySlug(_ context.Context, _ shortener.Slug) (*shortener.ShortLink, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}

	return nil, shortener.ErrNotFound
}

func (m *mockRepository) Insert(_ context.Context, link *shortener.ShortLink) (*shortener.ShortLink, error) {
	m.inserted = append(m.inserted, link)

	if m.insertErr != nil {
		return nil, m.insertErr
	}

	return link, nil
}

// sequence returns a generator that yields the given slugs in order.
func sequence(slugs ...string) shortener.SlugGenerator {
	i := 0

	return func() string {
		slug := slugs[i%len(slugs)]
		i++

		return slug
	}
}

func TestService_Create(t *testing.T) {
	t.Run("generates a slug when none is given", func(t *testing.T) {
		gen, _ := shortener.NewSlugGenerator(shortener.DefaultSlugLength)
		svc := shortener.NewService(store.NewMemoryStore(), gen, 3)

		link, err := svc.Create(context.Background(), shortener.CreateInput{URL: "https://openai.com"})

		require.NoError(t, err)
		assert.Len(t, string(link.Slug), 5)
		assert.Equal(t, "https://openai.com", link.URL)
		assert.NotEmpty(t, link.ID)
		assert.False(t, link.Created.IsZero())
	})

	t.Run("lowercases the given slug", func(t *testing.T) {
		svc := shortener.NewService(store.NewMemoryStore(), sequence("unused"), 0)

		link, err := svc.Create(context.Background(), shortener.CreateInput{Slug: " MySlug ", URL: "https://a.com"})

		require.NoError(t, err)
		assert.Equal(t, shortener.Slug("myslug"), link.Slug)
	})

	t.Run("keeps the given created time", func(t *testing.T) {
		svc := shortener.NewService(store.NewMemoryStore(), sequence("abcde"), 0)
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

		link, err := svc.Create(context.Background(), shortener.CreateInput{URL: "https://a.com", Created: created})

		require.NoError(t, err)
		assert.Equal(t, created, link.Created)
	})

	t.Run("rejects a slug that is already used", func(t *testing.T) {
		svc := shortener.NewService(store.NewMemoryStore(), sequence("unused"), 0)

		_, err := svc.Create(context.Background(), shortener.CreateInput{Slug: "abc", URL: "https://a.com"})
		require.NoError(t, err)

		link, err := svc.Create(context.Background(), shortener.CreateInput{Slug: "abc", URL: "https://b.com"})

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortener.ErrSlugTaken)

		existing, err := svc.Resolve(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "https://a.com", existing.URL)
	})

	t.Run("detects conflicts regardless of case", func(t *testing.T) {
		svc := shortener.NewService(store.NewMemoryStore(), sequence("unused"), 0)
		_, _ = svc.Create(context.Background(), shortener.CreateInput{Slug: "abc", URL: "https://a.com"})

		_, err := svc.Create(context.Background(), shortener.CreateInput{Slug: "ABC", URL: "https://b.com"})

		assert.ErrorIs(t, err, shortener.ErrSlugTaken)
	})

	t.Run("returns validation error and stores nothing", func(t *testing.T) {
		repo := &mockRepository{}
		svc := shortener.NewService(repo, sequence("abcde"), 0)

		link, err := svc.Create(context.Background(), shortener.CreateInput{URL: "not-a-url"})

		var verr *shortener.ValidationError

		assert.Nil(t, link)
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, repo.inserted)
	})

	t.Run("retries generated slug on collision", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_, _ = memStore.Insert(context.Background(), &shortener.ShortLink{Slug: "taken", URL: "https://a.com"})
		svc := shortener.NewService(memStore, sequence("taken", "fresh"), 1)

		link, err := svc.Create(context.Background(), shortener.CreateInput{URL: "https://b.com"})

		require.NoError(t, err)
		assert.Equal(t, shortener.Slug("fresh"), link.Slug)
	})

	t.Run("gives up after the configured retries", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_, _ = memStore.Insert(context.Background(), &shortener.ShortLink{Slug: "taken", URL: "https://a.com"})
		svc := shortener.NewService(memStore, sequence("taken"), 2)

		link, err := svc.Create(context.Background(), shortener.CreateInput{URL: "https://b.com"})

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortener.ErrSlugTaken)
	})

	t.Run("does not retry on store failure", func(t *testing.T) {
		repo := &mockRepository{insertErr: errMock}
		svc := shortener.NewService(repo, sequence("abcde"), 3)

		_, err := svc.Create(context.Background(), shortener.CreateInput{URL: "https://a.com"})

		assert.ErrorIs(t, err, errMock)
		assert.Len(t, repo.inserted, 1)
	})

	t.Run("returns error when existence check fails", func(t *testing.T) {
		repo := &mockRepository{findErr: errMock}
		svc := shortener.NewService(repo, sequence("abcde"), 0)

		_, err := svc.Create(context.Background(), shortener.CreateInput{Slug: "abc", URL: "https://a.com"})

		assert.ErrorIs(t, err, errMock)
		assert.Empty(t, repo.inserted)
	})

	t.Run("maps insert race on explicit slug to conflict", func(t *testing.T) {
		repo := &mockRepository{insertErr: shortener.ErrSlugTaken}
		svc := shortener.NewService(repo, sequence("abcde"), 3)

		_, err := svc.Create(context.Background(), shortener.CreateInput{Slug: "abc", URL: "https://a.com"})

		assert.ErrorIs(t, err, shortener.ErrSlugTaken)
		assert.Len(t, repo.inserted, 1)
	})
}

func TestService_Resolve(t *testing.T) {
	t.Run("resolves a created link repeatedly", func(t *testing.T) {
		gen, _ := shortener.NewSlugGenerator(shortener.DefaultSlugLength)
		svc := shortener.NewService(store.NewMemoryStore(), gen, 0)
		created, _ := svc.Create(context.Background(), shortener.CreateInput{URL: "https://example.com"})

		for range 3 {
			link, err := svc.Resolve(context.Background(), string(created.Slug))

			require.NoError(t, err)
			assert.Equal(t, "https://example.com", link.URL)
		}
	})

	t.Run("normalizes the looked up slug", func(t *testing.T) {
		svc := shortener.NewService(store.NewMemoryStore(), sequence("unused"), 0)
		_, _ = svc.Create(context.Background(), shortener.CreateInput{Slug: "abc", URL: "https://a.com"})

		link, err := svc.Resolve(context.Background(), "ABC")

		require.NoError(t, err)
		assert.Equal(t, "https://a.com", link.URL)
	})

	t.Run("returns ErrNotFound for unknown slug", func(t *testing.T) {
		svc := shortener.NewService(store.NewMemoryStore(), sequence("unused"), 0)

		link, err := svc.Resolve(context.Background(), "missing")

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		svc := shortener.NewService(&mockRepository{findErr: errMock}, sequence("unused"), 0)

		_, err := svc.Resolve(context.Background(), "abc")

		assert.ErrorIs(t, err, errMock)
		assert.NotErrorIs(t, err, shortener.ErrNotFound)
	})
}

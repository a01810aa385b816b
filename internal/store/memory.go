package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.Slug]shortener.ShortLink
}

// NewMemoryStore creates a new in-memory short link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Slug]shortener.ShortLink),
	}
}

// EnsureIndexes is a no-op: map keys are unique.
func (m *MemoryStore) EnsureIndexes(_ context.Context) error {
	return nil
}

func (m *MemoryStore) FindBySlug(_ context.Context, slug shortener.Slug) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[slug]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &link, nil
}

func (m *MemoryStore) Insert(_ context.Context, link *shortener.ShortLink) (*shortener.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Slug]; ok {
		return nil, errors.WithStack(shortener.ErrSlugTaken)
	}

	stored := *link
	stored.ID = uuid.NewString()
	m.links[stored.Slug] = stored

	return &stored, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)

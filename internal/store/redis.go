package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// Each short link is a JSON string under prefix+slug; SETNX makes the key
// the uniqueness constraint.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type redisRecord struct {
	ID      string    `json:"id"`
	Slug    string    `json:"slug"`
	URL     string    `json:"url"`
	Created time.Time `json:"created"`
}

// NewRedisStore creates a new Redis-backed short link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "urls:",
	}
}

// EnsureIndexes verifies connectivity; key uniqueness needs no index.
func (r *RedisStore) EnsureIndexes(ctx context.Context) error {
	return errors.Wrap(r.Ping(ctx), "ensure redis store")
}

func (r *RedisStore) FindBySlug(ctx context.Context, slug shortener.Slug) (*shortener.ShortLink, error) {
	payload, err := r.client.Get(ctx, r.prefix+string(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, errors.WithStack(err)
	}

	var rec redisRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, errors.Wrapf(err, "decode short link %q", slug)
	}

	return &shortener.ShortLink{
		ID:      rec.ID,
		Slug:    shortener.Slug(rec.Slug),
		URL:     rec.URL,
		Created: rec.Created,
	}, nil
}

func (r *RedisStore) Insert(ctx context.Context, link *shortener.ShortLink) (*shortener.ShortLink, error) {
	stored := *link
	stored.ID = uuid.NewString()

	payload, err := json.Marshal(redisRecord{
		ID:      stored.ID,
		Slug:    string(stored.Slug),
		URL:     stored.URL,
		Created: stored.Created,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ok, err := r.client.SetNX(ctx, r.prefix+string(stored.Slug), payload, 0).Result()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !ok {
		return nil, errors.WithStack(shortener.ErrSlugTaken)
	}

	return &stored, nil
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Shutdown closes the Redis client.
func (r *RedisStore) Shutdown() error {
	return r.client.Close()
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)

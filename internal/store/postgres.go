package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/serroba/shortlink/internal/shortener"
)

// pgUniqueViolation is the SQLSTATE raised when a unique index rejects a row.
const pgUniqueViolation = "23505"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS urls (
		id      UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slug    TEXT NOT NULL,
		url     TEXT NOT NULL,
		created TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS urls_slug_key ON urls (slug)`,
}

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed short link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureIndexes creates the urls table and its unique slug index if missing.
func (p *PostgresStore) EnsureIndexes(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensure urls schema")
		}
	}

	return nil
}

func (p *PostgresStore) FindBySlug(ctx context.Context, slug shortener.Slug) (*shortener.ShortLink, error) {
	query := `
		SELECT id::text, slug, url, created
		FROM urls
		WHERE slug = $1
	`

	var link shortener.ShortLink

	err := p.pool.QueryRow(ctx, query, string(slug)).Scan(
		&link.ID,
		&link.Slug,
		&link.URL,
		&link.Created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &link, nil
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.ShortLink) (*shortener.ShortLink, error) {
	query := `
		INSERT INTO urls (slug, url, created)
		VALUES ($1, $2, $3)
		RETURNING id::text, created
	`

	stored := *link

	err := p.pool.QueryRow(ctx, query,
		string(link.Slug),
		link.URL,
		link.Created,
	).Scan(&stored.ID, &stored.Created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.WithStack(shortener.ErrSlugTaken)
		}

		return nil, errors.WithStack(err)
	}

	return &stored, nil
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Shutdown closes the connection pool.
func (p *PostgresStore) Shutdown() error {
	p.pool.Close()

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)

package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/linkshort/internal/analytics"
)

// Postgres is a PostgreSQL implementation of analytics.Store.
//
// Expected schema:
//
//	CREATE TABLE link_created_events (
//	    link_id      TEXT        NOT NULL,
//	    original_url TEXT        NOT NULL,
//	    short_url    TEXT        NOT NULL,
//	    ref_id       TEXT,
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    client_ip    TEXT,
//	    user_agent   TEXT
//	);
//	CREATE TABLE link_visited_events (
//	    link_id    TEXT        NOT NULL,
//	    visited_at TIMESTAMPTZ NOT NULL,
//	    client_ip  TEXT,
//	    user_agent TEXT,
//	    referrer   TEXT
//	);
//	CREATE TABLE link_deleted_events (
//	    link_id    TEXT        NOT NULL,
//	    ref_id     TEXT,
//	    deleted_at TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	query := `
		INSERT INTO link_created_events (link_id, original_url, short_url, ref_id, created_at, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.OriginalURL,
		event.ShortURL,
		nullableString(event.RefID),
		event.CreatedAt,
		event.ClientIP,
		event.UserAgent,
	)

	return err
}

func (p *Postgres) SaveLinkVisited(ctx context.Context, event *analytics.LinkVisitedEvent) error {
	query := `
		INSERT INTO link_visited_events (link_id, visited_at, client_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.VisitedAt,
		event.ClientIP,
		event.UserAgent,
		nullableString(event.Referrer),
	)

	return err
}

func (p *Postgres) SaveLinkDeleted(ctx context.Context, event *analytics.LinkDeletedEvent) error {
	query := `
		INSERT INTO link_deleted_events (link_id, ref_id, deleted_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		nullableString(event.RefID),
		event.DeletedAt,
	)

	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

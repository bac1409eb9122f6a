package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"humorpedia-web/internal/domain"
)

// SnapshotLoader reads content documents from the local snapshot table. The
// table mirrors CMS documents as JSONB so pages keep serving when the
// content API is unreachable.
type SnapshotLoader struct {
	pool *pgxpool.Pool
}

func NewSnapshotLoader(pool *pgxpool.Pool) *SnapshotLoader {
	return &SnapshotLoader{pool: pool}
}

func (l *SnapshotLoader) LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx,
		`SELECT data FROM content_snapshots WHERE content_type=$1 AND slug=$2`,
		string(contentType), slug,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Entity{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Entity{}, fmt.Errorf("load snapshot: %w", err)
	}

	e, err := domain.DecodeEntity(raw)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("decode snapshot %s/%s: %w", contentType, slug, err)
	}
	if e.ContentType == "" {
		e.ContentType = contentType
	}
	return e, nil
}

// StoreEntity upserts one document into the snapshot table.
func (l *SnapshotLoader) StoreEntity(ctx context.Context, e domain.Entity) error {
	raw, err := domain.EncodeEntity(e)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO content_snapshots (content_type, slug, data, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (content_type, slug)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		string(e.ContentType), e.Slug, raw,
	)
	if err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

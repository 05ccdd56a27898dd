package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/election-service/internal/domain"
)

// WatchlistRepository defines persistence access for per-user watchlists.
// Every operation is keyed by the owning user id; there is no cross-user
// access path.
type WatchlistRepository interface {
	Add(ctx context.Context, item *domain.WatchlistItem) error
	Remove(ctx context.Context, userID, itemID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.WatchlistItem, error)
}

type watchlistRepository struct {
	pool *pgxpool.Pool
}

// NewWatchlistRepository returns a Postgres-backed implementation.
func NewWatchlistRepository(pool *pgxpool.Pool) WatchlistRepository {
	return &watchlistRepository{pool: pool}
}

func (r *watchlistRepository) Add(ctx context.Context, item *domain.WatchlistItem) error {
	const query = `
        INSERT INTO watchlists (user_id, election_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, election_id) DO NOTHING
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, item.UserID, item.ElectionID).
		Scan(&item.ID, &item.CreatedAt)
	if err == pgx.ErrNoRows {
		// already watched; load the existing row
		const existing = `
            SELECT id, created_at FROM watchlists
            WHERE user_id=$1 AND election_id=$2`
		return r.pool.QueryRow(ctx, existing, item.UserID, item.ElectionID).
			Scan(&item.ID, &item.CreatedAt)
	}
	return err
}

func (r *watchlistRepository) Remove(ctx context.Context, userID, itemID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM watchlists WHERE id=$1 AND user_id=$2`, itemID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *watchlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WatchlistItem, error) {
	const query = `
        SELECT id, user_id, election_id, created_at
        FROM watchlists WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WatchlistItem
	for rows.Next() {
		var item domain.WatchlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ElectionID, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

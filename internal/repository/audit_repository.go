package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/election-service/internal/domain"
)

// AuditRepository persists completed-request audit entries. It is the sink
// behind the audit recorder; writes are append-only.
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO audit_log (method, endpoint, user_id, status_code, response_time_ms, cf_country, cf_ray_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.Method,
		entry.Endpoint,
		entry.UserID,
		entry.StatusCode,
		entry.ResponseTimeMs,
		entry.CFCountry,
		entry.CFRayID,
	)
	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	const query = `
        SELECT id, method, endpoint, user_id, status_code, response_time_ms, cf_country, cf_ray_id, created_at
        FROM audit_log ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(
			&e.ID,
			&e.Method,
			&e.Endpoint,
			&e.UserID,
			&e.StatusCode,
			&e.ResponseTimeMs,
			&e.CFCountry,
			&e.CFRayID,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

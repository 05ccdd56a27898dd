package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/election-service/internal/domain"
)

// ElectionRepository defines persistence access for elections.
type ElectionRepository interface {
	Create(ctx context.Context, election *domain.Election) error
	Update(ctx context.Context, election *domain.Election) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Election, error)
	GetByID(ctx context.Context, id string) (*domain.Election, error)
}

type electionRepository struct {
	pool *pgxpool.Pool
}

// NewElectionRepository returns a Postgres-backed implementation.
func NewElectionRepository(pool *pgxpool.Pool) ElectionRepository {
	return &electionRepository{pool: pool}
}

func (r *electionRepository) Create(ctx context.Context, election *domain.Election) error {
	const query = `
        INSERT INTO elections (state_id, title, office, status, election_day)
        VALUES (NULLIF($1,''), $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		election.StateID,
		election.Title,
		election.Office,
		election.Status,
		election.ElectionDay,
	).Scan(&election.ID, &election.CreatedAt, &election.UpdatedAt)
}

func (r *electionRepository) Update(ctx context.Context, election *domain.Election) error {
	const query = `
        UPDATE elections
        SET state_id=NULLIF($1,''), title=$2, office=$3, status=$4, election_day=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		election.StateID,
		election.Title,
		election.Office,
		election.Status,
		election.ElectionDay,
		election.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *electionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM elections WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *electionRepository) List(ctx context.Context) ([]domain.Election, error) {
	const query = `
        SELECT id, COALESCE(state_id::text,''), title, office, status, election_day, created_at, updated_at
        FROM elections ORDER BY election_day`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elections []domain.Election
	for rows.Next() {
		var e domain.Election
		if err := rows.Scan(
			&e.ID,
			&e.StateID,
			&e.Title,
			&e.Office,
			&e.Status,
			&e.ElectionDay,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		elections = append(elections, e)
	}
	return elections, rows.Err()
}

func (r *electionRepository) GetByID(ctx context.Context, id string) (*domain.Election, error) {
	const query = `
        SELECT id, COALESCE(state_id::text,''), title, office, status, election_day, created_at, updated_at
        FROM elections WHERE id=$1`

	var e domain.Election
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.StateID,
		&e.Title,
		&e.Office,
		&e.Status,
		&e.ElectionDay,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

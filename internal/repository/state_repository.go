package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/election-service/internal/domain"
)

// StateRepository defines read access to the states reference table.
type StateRepository interface {
	List(ctx context.Context) ([]domain.State, error)
	GetByID(ctx context.Context, id string) (*domain.State, error)
	Upsert(ctx context.Context, state *domain.State) error
}

type stateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository returns a Postgres-backed implementation.
func NewStateRepository(pool *pgxpool.Pool) StateRepository {
	return &stateRepository{pool: pool}
}

func (r *stateRepository) List(ctx context.Context) ([]domain.State, error) {
	const query = `
        SELECT id, code, name, capital, electoral_votes
        FROM states ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []domain.State
	for rows.Next() {
		var s domain.State
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Capital, &s.ElectoralVotes); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *stateRepository) GetByID(ctx context.Context, id string) (*domain.State, error) {
	const query = `
        SELECT id, code, name, capital, electoral_votes
        FROM states WHERE id=$1`

	var s domain.State
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.Capital,
		&s.ElectoralVotes,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stateRepository) Upsert(ctx context.Context, state *domain.State) error {
	const query = `
        INSERT INTO states (id, code, name, capital, electoral_votes)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (code) DO UPDATE
        SET name=EXCLUDED.name, capital=EXCLUDED.capital, electoral_votes=EXCLUDED.electoral_votes`

	_, err := r.pool.Exec(ctx, query,
		state.ID,
		state.Code,
		state.Name,
		state.Capital,
		state.ElectoralVotes,
	)
	return err
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/election-service/internal/domain"
)

// CandidateRepository defines persistence access for candidates.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	ListByElection(ctx context.Context, electionID string) ([]domain.Candidate, error)
}

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository returns a Postgres-backed implementation.
func NewCandidateRepository(pool *pgxpool.Pool) CandidateRepository {
	return &candidateRepository{pool: pool}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	const query = `
        INSERT INTO candidates (election_id, name, party, incumbent)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		candidate.ElectionID,
		candidate.Name,
		candidate.Party,
		candidate.Incumbent,
	).Scan(&candidate.ID, &candidate.CreatedAt, &candidate.UpdatedAt)
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	const query = `
        SELECT id, election_id, name, party, incumbent, created_at, updated_at
        FROM candidates WHERE id=$1`

	var c domain.Candidate
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ElectionID,
		&c.Name,
		&c.Party,
		&c.Incumbent,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) ListByElection(ctx context.Context, electionID string) ([]domain.Candidate, error) {
	const query = `
        SELECT id, election_id, name, party, incumbent, created_at, updated_at
        FROM candidates WHERE election_id=$1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(
			&c.ID,
			&c.ElectionID,
			&c.Name,
			&c.Party,
			&c.Incumbent,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

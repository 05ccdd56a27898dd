package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/persistence"
	"github.com/spec-kit/election-service/internal/repository"
)

const (
	cacheKeyStates    = "cache:states"
	cacheKeyElections = "cache:elections"
)

// ElectionService serves reference data reads with a cache-aside layer and
// routes writes through the repositories, invalidating on change. Cache
// failures degrade to direct DB reads and are never surfaced to callers.
type ElectionService struct {
	states     repository.StateRepository
	elections  repository.ElectionRepository
	candidates repository.CandidateRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewElectionService builds the service.
func NewElectionService(
	states repository.StateRepository,
	elections repository.ElectionRepository,
	candidates repository.CandidateRepository,
	cache *persistence.Redis,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ElectionService {
	return &ElectionService{
		states:     states,
		elections:  elections,
		candidates: candidates,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ListStates returns all states, cached.
func (s *ElectionService) ListStates(ctx context.Context) ([]domain.State, error) {
	var states []domain.State
	if s.fromCache(ctx, cacheKeyStates, &states) {
		return states, nil
	}

	states, err := s.states.List(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cacheKeyStates, states)
	return states, nil
}

// GetState returns one state by id.
func (s *ElectionService) GetState(ctx context.Context, id string) (*domain.State, error) {
	return s.states.GetByID(ctx, id)
}

// ListElections returns all elections, cached.
func (s *ElectionService) ListElections(ctx context.Context) ([]domain.Election, error) {
	var elections []domain.Election
	if s.fromCache(ctx, cacheKeyElections, &elections) {
		return elections, nil
	}

	elections, err := s.elections.List(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cacheKeyElections, elections)
	return elections, nil
}

// GetElection returns one election by id.
func (s *ElectionService) GetElection(ctx context.Context, id string) (*domain.Election, error) {
	return s.elections.GetByID(ctx, id)
}

// CreateElection persists a new election and invalidates the listing cache.
func (s *ElectionService) CreateElection(ctx context.Context, election *domain.Election) error {
	if election.Status == "" {
		election.Status = domain.ElectionStatusUpcoming
	}
	if err := s.elections.Create(ctx, election); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyElections)
	return nil
}

// UpdateElection persists changes and invalidates the listing cache.
func (s *ElectionService) UpdateElection(ctx context.Context, election *domain.Election) error {
	if err := s.elections.Update(ctx, election); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyElections)
	return nil
}

// DeleteElection removes an election and invalidates the listing cache.
func (s *ElectionService) DeleteElection(ctx context.Context, id string) error {
	if err := s.elections.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyElections)
	return nil
}

// ListCandidates returns candidates for one election.
func (s *ElectionService) ListCandidates(ctx context.Context, electionID string) ([]domain.Candidate, error) {
	return s.candidates.ListByElection(ctx, electionID)
}

// GetCandidate returns one candidate by id.
func (s *ElectionService) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	return s.candidates.GetByID(ctx, id)
}

// CreateCandidate persists a new candidate after checking the election exists.
func (s *ElectionService) CreateCandidate(ctx context.Context, candidate *domain.Candidate) error {
	if _, err := s.elections.GetByID(ctx, candidate.ElectionID); err != nil {
		return err
	}
	return s.candidates.Create(ctx, candidate)
}

func (s *ElectionService) fromCache(ctx context.Context, key string, dest any) bool {
	raw, err := s.cache.GetCached(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("cache entry unreadable; falling back to database", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ElectionService) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.SetCached(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ElectionService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.InvalidateCached(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

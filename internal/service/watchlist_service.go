package service

import (
	"context"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/repository"
)

// WatchlistService manages per-user election watchlists. Every operation
// takes the caller's user id from their verified identity; there is no way
// to address another user's list.
type WatchlistService struct {
	watchlists repository.WatchlistRepository
	elections  repository.ElectionRepository
}

// NewWatchlistService builds the service.
func NewWatchlistService(watchlists repository.WatchlistRepository, elections repository.ElectionRepository) *WatchlistService {
	return &WatchlistService{watchlists: watchlists, elections: elections}
}

// List returns the caller's watchlist.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]domain.WatchlistItem, error) {
	return s.watchlists.ListByUser(ctx, userID)
}

// Add puts an election on the caller's watchlist. Adding an election that is
// already watched returns the existing item.
func (s *WatchlistService) Add(ctx context.Context, userID, electionID string) (*domain.WatchlistItem, error) {
	if _, err := s.elections.GetByID(ctx, electionID); err != nil {
		return nil, err
	}

	item := &domain.WatchlistItem{UserID: userID, ElectionID: electionID}
	if err := s.watchlists.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes an item from the caller's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID, itemID string) error {
	return s.watchlists.Remove(ctx, userID, itemID)
}

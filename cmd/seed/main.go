package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/election-service/internal/config"
	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/observability"
	"github.com/spec-kit/election-service/internal/persistence"
	"github.com/spec-kit/election-service/internal/repository"
)

// seedStates is a small reference set; the full table ships with deployment
// tooling. Codes are unique, so reseeding is idempotent via upsert.
var seedStates = []domain.State{
	{Code: "CA", Name: "California", Capital: "Sacramento", ElectoralVotes: 54},
	{Code: "TX", Name: "Texas", Capital: "Austin", ElectoralVotes: 40},
	{Code: "FL", Name: "Florida", Capital: "Tallahassee", ElectoralVotes: 30},
	{Code: "NY", Name: "New York", Capital: "Albany", ElectoralVotes: 28},
	{Code: "PA", Name: "Pennsylvania", Capital: "Harrisburg", ElectoralVotes: 19},
	{Code: "OH", Name: "Ohio", Capital: "Columbus", ElectoralVotes: 17},
	{Code: "GA", Name: "Georgia", Capital: "Atlanta", ElectoralVotes: 16},
	{Code: "MI", Name: "Michigan", Capital: "Lansing", ElectoralVotes: 15},
	{Code: "AZ", Name: "Arizona", Capital: "Phoenix", ElectoralVotes: 11},
	{Code: "WI", Name: "Wisconsin", Capital: "Madison", ElectoralVotes: 10},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	states := repository.NewStateRepository(pool)
	elections := repository.NewElectionRepository(pool)
	candidates := repository.NewCandidateRepository(pool)

	for i := range seedStates {
		state := seedStates[i]
		state.ID = uuid.NewString()
		if err := states.Upsert(ctx, &state); err != nil {
			logger.Fatal("seed state failed", zap.String("code", state.Code), zap.Error(err))
		}
	}
	logger.Info("states seeded", zap.Int("count", len(seedStates)))

	existing, err := elections.List(ctx)
	if err != nil {
		logger.Fatal("list elections failed", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("elections already present; skipping sample data", zap.Int("count", len(existing)))
		return
	}

	election := &domain.Election{
		Title:       "Presidential General Election",
		Office:      "President",
		Status:      domain.ElectionStatusUpcoming,
		ElectionDay: time.Date(2028, time.November, 7, 0, 0, 0, 0, time.UTC),
	}
	if err := elections.Create(ctx, election); err != nil {
		logger.Fatal("seed election failed", zap.Error(err))
	}

	sample := []domain.Candidate{
		{ElectionID: election.ID, Name: "Alex Rivera", Party: "Independent"},
		{ElectionID: election.ID, Name: "Jordan Blake", Party: "Reform", Incumbent: true},
	}
	for i := range sample {
		if err := candidates.Create(ctx, &sample[i]); err != nil {
			logger.Fatal("seed candidate failed", zap.String("name", sample[i].Name), zap.Error(err))
		}
	}

	logger.Info("sample election seeded", zap.String("election_id", election.ID))
}

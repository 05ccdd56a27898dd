package domain

import "time"

// State is a reference row for a US state or territory.
type State struct {
	ID             string
	Code           string
	Name           string
	Capital        string
	ElectoralVotes int
}

// ElectionStatus tracks an election through its lifecycle.
type ElectionStatus string

const (
	ElectionStatusUpcoming  ElectionStatus = "UPCOMING"
	ElectionStatusActive    ElectionStatus = "ACTIVE"
	ElectionStatusCompleted ElectionStatus = "COMPLETED"
)

// Election is a race voters can follow: a contest for one office in one state
// (or nationwide when StateID is empty).
type Election struct {
	ID          string
	StateID     string
	Title       string
	Office      string
	Status      ElectionStatus
	ElectionDay time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Candidate is a person running in an election.
type Candidate struct {
	ID         string
	ElectionID string
	Name       string
	Party      string
	Incumbent  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

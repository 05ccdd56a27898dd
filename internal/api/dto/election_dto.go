package dto

import "time"

// ElectionRequest payload for creating or updating an election.
type ElectionRequest struct {
	StateID     string    `json:"state_id"`
	Title       string    `json:"title"`
	Office      string    `json:"office"`
	Status      string    `json:"status"`
	ElectionDay time.Time `json:"election_day"`
}

// CandidateRequest payload for adding a candidate to an election.
type CandidateRequest struct {
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	Incumbent  bool   `json:"incumbent"`
}

// WatchRequest payload for watching an election.
type WatchRequest struct {
	ElectionID string `json:"election_id"`
}

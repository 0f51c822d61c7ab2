package db

import "time"

// PlayerRecord represents a stored catalog row.
// Roles holds the multi-role label, e.g. "D;C".
type PlayerRecord struct {
	ID                  string
	Name                string
	Club                string
	Roles               string
	SeasonAverageRating float64
	FantasyAverage      float64
	Appearances         int
	Cost                float64
	ImportedAt          time.Time
}

// GenerationRecord represents a stored roster generation request and its outcome
type GenerationRecord struct {
	ID        string
	Strategy  string
	Status    string
	Budget    float64
	TotalCost float64
	MinPct    float64
	MaxPct    float64
	Attempts  int
	Reason    string
	CreatedAt time.Time
}

// RosterPickRecord represents one player of a stored roster
type RosterPickRecord struct {
	GenerationID string
	PlayerID     string
	PlayerName   string
	Club         string
	Role         string
	Cost         float64
	Score        float64
}

// internal/ranking/models.go
package ranking

import (
	"time"
)

// Version tags the ranking payload format written to the cache.
const Version = "3.0"

// Entry is one company in a support or oppose list.
type Entry struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning,omitempty"`
}

// CachedRanking is the complete ranking payload for one persona. Support
// holds the highest-scoring companies, Oppose the lowest with the worst
// first. Each generation gets a fresh GenerationID so readers can tell
// refreshes apart.
type CachedRanking struct {
	Persona      string    `json:"persona"`
	Support      []Entry   `json:"support"`
	Oppose       []Entry   `json:"oppose"`
	GenerationID string    `json:"generation_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Version      string    `json:"version"`
}

// Config holds the orchestrator settings.
type Config struct {
	TopN           int
	MaxConcurrency int
	CacheTTL       time.Duration
}

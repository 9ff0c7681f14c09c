package portal

import "time"

// Repo stores one Controller per browser session.
type Repo interface {
	// Create stores a fresh controller under a new session ID.
	Create() (*Controller, error)
	Get(sessionID string) (*Controller, error)
	Delete(sessionID string) error
	// Sweep closes and removes controllers idle since before cutoff. It returns how many went.
	Sweep(cutoff time.Time) int
	Len() int
}

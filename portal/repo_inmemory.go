package portal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

// InMemoryRepo is an in-memory implementation of Repo
type InMemoryRepo struct {
	mu          sync.RWMutex
	deps        Deps
	controllers map[string]*Controller // sessionID -> Controller
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a repository whose controllers share deps
func NewInMemoryRepo(deps Deps) *InMemoryRepo {
	return &InMemoryRepo{
		deps:        deps,
		controllers: make(map[string]*Controller),
	}
}

func (r *InMemoryRepo) Create() (*Controller, error) {
	id := uuid.NewString()
	c := NewController(id, r.deps)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[id] = c
	return c, nil
}

func (r *InMemoryRepo) Get(sessionID string) (*Controller, error) {
	if sessionID == "" {
		return nil, perrors.Wrapf(perrors.ErrSessionNotFound, "[InMemoryRepo Get] sessionID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[sessionID]
	if !ok {
		return nil, perrors.Wrapf(perrors.ErrSessionNotFound, "[InMemoryRepo Get] %s", sessionID)
	}
	return c, nil
}

// Delete closes and removes a controller
func (r *InMemoryRepo) Delete(sessionID string) error {
	r.mu.Lock()
	c, ok := r.controllers[sessionID]
	delete(r.controllers, sessionID)
	r.mu.Unlock()

	if ok {
		c.Close()
	}
	return nil // Already doesn't exist, no error
}

func (r *InMemoryRepo) Sweep(cutoff time.Time) int {
	var stale []*Controller

	r.mu.Lock()
	for id, c := range r.controllers {
		if c.IdleSince().Before(cutoff) {
			stale = append(stale, c)
			delete(r.controllers, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	return len(stale)
}

func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}

// RunSweeper sweeps controllers idle for longer than maxAge every interval until ctx is done.
func RunSweeper(ctx context.Context, repo Repo, now func() time.Time, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := repo.Sweep(now().Add(-maxAge)); n > 0 {
				log.Info().Int("swept", n).Int("remaining", repo.Len()).Msg("Closed idle portal sessions")
			}
		}
	}
}

package repo

import (
	"context"
	"sync"

	"github.com/wardline/server/internal/intake/model"
)

// MemorySessionRepository keeps session state in process memory behind a
// mutex. It offers the same contract as the Redis repository and is meant
// for tests and single-process local runs; state does not survive restarts
// and is never evicted.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*model.SessionState
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*model.SessionState)}
}

func (r *MemorySessionRepository) GetOrCreate(ctx context.Context, sessionID string) (*model.SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[sessionID]; ok {
		return s.Clone(), nil
	}
	return model.NewSessionState(sessionID), nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, sessionID string, state *model.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = state.Clone()
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)

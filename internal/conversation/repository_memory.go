package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository keeps logs in process memory only. Nothing survives a
// restart and there is no cap on the number of sessions.
type InMemoryRepository struct {
	mu       sync.RWMutex
	limit    int
	sessions map[string][]Turn
}

func NewInMemoryRepository(limit int) *InMemoryRepository {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &InMemoryRepository{
		limit:    limit,
		sessions: make(map[string][]Turn),
	}
}

// Append adds a turn and trims the oldest ones past the limit.
func (r *InMemoryRepository) Append(sessionID string, turn Turn) Turn {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.Bot == nil {
		turn.Bot = []string{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log := append(r.sessions[sessionID], turn)
	if over := len(log) - r.limit; over > 0 {
		log = append([]Turn(nil), log[over:]...)
	}
	r.sessions[sessionID] = log
	return turn
}

// Get returns a copy of the session log, oldest first. Unknown sessions
// yield an empty, non-nil slice.
func (r *InMemoryRepository) Get(sessionID string) []Turn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Turn, len(r.sessions[sessionID]))
	copy(out, r.sessions[sessionID])
	return out
}

func (r *InMemoryRepository) Delete(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Count is the number of sessions with a log.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

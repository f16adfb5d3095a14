package game

import (
	"sync"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// Registry is the process-wide lookup from room identifier to live
// session. It exclusively owns session instances: everything else
// accesses them by identifier, and create/destroy are its only mutating
// operations.
type Registry struct {
	mu       sync.RWMutex
	sessions map[model.RoomID]*Session
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[model.RoomID]*Session),
	}
}

// Add registers a session, failing if the room already has one
func (r *Registry) Add(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.RoomID()]; ok {
		return model.ErrSessionExists
	}
	r.sessions[s.RoomID()] = s
	return nil
}

// Get returns the live session for a room
func (r *Registry) Get(roomID model.RoomID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[roomID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the registry; lookups after removal fail
// with ErrSessionNotFound so late requests cannot reach a dead match
func (r *Registry) Remove(roomID model.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, roomID)
}

// Count returns the number of live sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mzhao/legal-drafter/internal/session"
)

// SessionStore holds the in-memory editing sessions keyed by id. Sessions are
// not persisted; they live for the lifetime of the process.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*sessionEntry
}

// sessionEntry serializes access to one session. Form mutations are a strict
// sequence of discrete operations, so a plain mutex per session is enough.
type sessionEntry struct {
	mu   sync.Mutex
	sess *session.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[uuid.UUID]*sessionEntry)}
}

// Create registers a new empty session and returns its id.
func (st *SessionStore) Create() uuid.UUID {
	id := uuid.New()
	st.mu.Lock()
	st.entries[id] = &sessionEntry{sess: session.New()}
	st.mu.Unlock()
	return id
}

// With runs fn with exclusive access to the session, or returns false if the
// id is unknown.
func (st *SessionStore) With(id uuid.UUID, fn func(*session.Session) error) (bool, error) {
	st.mu.RLock()
	entry, ok := st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return false, nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return true, fn(entry.sess)
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (st *SessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.entries, id)
	st.mu.Unlock()
}

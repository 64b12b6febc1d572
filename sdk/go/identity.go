package skillswapsdk

import "sync"

// FallbackUserID is sent as the actor identity when no user is set.
const FallbackUserID = "test-user-123"

// HeaderUserID carries the actor identity on every request.
const HeaderUserID = "x-user-id"

// IdentityStore holds the current user read by the client on every request.
// It is safe for concurrent use.
type IdentityStore struct {
	mu      sync.RWMutex
	current *User
}

// NewIdentityStore returns an empty store.
func NewIdentityStore() *IdentityStore {
	return &IdentityStore{}
}

// SetCurrent replaces the stored identity. A nil user clears it.
func (s *IdentityStore) SetCurrent(u *User) {
	var next *User
	if u != nil {
		cp := *u
		next = &cp
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// GetCurrent returns a copy of the current user, or nil.
func (s *IdentityStore) GetCurrent() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// ActorID returns the id asserted to the backend.
func (s *IdentityStore) ActorID() string {
	if s == nil {
		return FallbackUserID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current != nil && s.current.ID != "" {
		return s.current.ID
	}
	return FallbackUserID
}

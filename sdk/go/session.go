package skillswapsdk

import "sync"

// DefaultTestUser is the synthetic identity installed when no real login exists.
func DefaultTestUser() User {
	return User{
		ID:       FallbackUserID,
		FullName: "Test User",
		Email:    "test@example.com",
		Skill:    "general",
		IsActive: true,
	}
}

// Session binds login state to an IdentityStore. The store stays the single
// source of truth; Session only adds the loading flag.
type Session struct {
	store *IdentityStore

	mu      sync.Mutex
	loading bool
}

// NewSession returns a session in the loading state.
func NewSession(store *IdentityStore) *Session {
	if store == nil {
		store = NewIdentityStore()
	}
	return &Session{store: store, loading: true}
}

// Start installs the initial identity and clears loading. It stands in for an
// authentication handshake and must run before any request is issued.
func (s *Session) Start(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetCurrent(&u)
	s.loading = false
}

// Login replaces the current identity.
func (s *Session) Login(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetCurrent(&u)
}

// Logout clears the current identity.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetCurrent(nil)
}

// User returns the current identity, or nil.
func (s *Session) User() *User {
	return s.store.GetCurrent()
}

// Loading reports whether Start has not run yet.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Store exposes the identity store the session writes to.
func (s *Session) Store() *IdentityStore {
	return s.store
}

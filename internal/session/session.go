// Package session is the single source of truth for "is a user
// authenticated, and in what role".
//
// The store wraps a pluggable key-value backing store with typed accessors,
// an in-memory cache, and subscriber notification. It is the only writer of
// session state; every other component reads derived, read-only views.
// Persistence is best-effort: backing-store failures are logged and never
// surfaced to callers.
package session

import (
	"sync"

	"github.com/swasthaai/swastha-cli/internal/log"
)

// Backing-store keys, mirroring the web client's session storage.
const (
	KeyAccessToken = "access_token"
	KeyUserRole    = "user_role"
)

// Known account roles. The set is closed on the backend; the client treats
// anything else as opaque.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Session is the pair of bearer token and role identifying an authenticated
// user. Empty strings mean "not set"; Role is only meaningful while Token is
// non-empty.
type Session struct {
	Token string
	Role  string
}

// IsLoggedIn reports whether the session carries a credential.
// Derived from Token, never stored independently.
func (s Session) IsLoggedIn() bool {
	return s.Token != ""
}

// Store tracks the authenticated user's credential token and role, persists
// them across invocations, and notifies subscribers on every change.
type Store struct {
	mu      sync.RWMutex
	backing BackingStore
	current Session
	subs    map[int]func(Session)
	nextSub int
	logger  *log.Logger
}

// New creates a Store backed by the given BackingStore and synchronously
// hydrates the in-memory state from it, so a restarted process sees the
// persisted session without any extra call.
func New(backing BackingStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	s := &Store{
		backing: backing,
		subs:    make(map[int]func(Session)),
		logger:  logger,
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	token, ok, err := s.backing.Get(KeyAccessToken)
	if err != nil {
		s.logger.Debug("session hydrate: token read failed", "error", err)
	} else if ok {
		s.current.Token = token
	}

	role, ok, err := s.backing.Get(KeyUserRole)
	if err != nil {
		s.logger.Debug("session hydrate: role read failed", "error", err)
	} else if ok {
		s.current.Role = role
	}
}

// Token returns the current credential, or "" if none is set.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Role returns the current account role, or "" if none is set.
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Role
}

// Session returns a read-only copy of the current session.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsLoggedIn reports whether a credential is present.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsLoggedIn()
}

// SetToken sets or clears the credential. Clearing the token also clears the
// role in the same operation so no orphaned role can survive. Idempotent.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	if token != "" {
		s.current.Token = token
		s.persist(KeyAccessToken, token)
	} else {
		s.current = Session{}
		s.remove(KeyAccessToken)
		s.remove(KeyUserRole)
	}
	snapshot := s.current
	s.mu.Unlock()

	s.notify(snapshot)
}

// SetRole sets or clears the role. Callers are responsible for not setting a
// role without a token; SetSession is the safer write path.
func (s *Store) SetRole(role string) {
	s.mu.Lock()
	s.current.Role = role
	if role != "" {
		s.persist(KeyUserRole, role)
	} else {
		s.remove(KeyUserRole)
	}
	snapshot := s.current
	s.mu.Unlock()

	s.notify(snapshot)
}

// SetSession atomically replaces both token and role. This is the write path
// used by the login and signup flows; it cannot leave the pair out of sync.
func (s *Store) SetSession(sess Session) {
	if sess.Token == "" {
		sess.Role = ""
	}

	s.mu.Lock()
	s.current = sess
	if sess.Token != "" {
		s.persist(KeyAccessToken, sess.Token)
	} else {
		s.remove(KeyAccessToken)
	}
	if sess.Role != "" {
		s.persist(KeyUserRole, sess.Role)
	} else {
		s.remove(KeyUserRole)
	}
	snapshot := s.current
	s.mu.Unlock()

	s.notify(snapshot)
}

// Logout atomically clears both token and role from memory and the backing
// store. After return, IsLoggedIn is false and no stale role remains.
func (s *Store) Logout() {
	s.SetSession(Session{})
}

// Subscribe registers fn to be called with a session snapshot after every
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(snapshot Session) {
	s.mu.RLock()
	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// persist and remove are fire-and-forget; the session contract assumes
// best-effort persistence and does not retry.
func (s *Store) persist(key, value string) {
	if err := s.backing.Set(key, value); err != nil {
		s.logger.Debug("session persist failed", "key", key, "error", err)
	}
}

func (s *Store) remove(key string) {
	if err := s.backing.Delete(key); err != nil {
		s.logger.Debug("session remove failed", "key", key, "error", err)
	}
}

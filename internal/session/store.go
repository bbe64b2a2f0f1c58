// Package session tracks the per-user multi-step input state of the add
// dialog. Sessions live in memory only and do not survive a restart.
package session

import (
	"sync"

	"github.com/danylakopych/familybudgetbot/internal/core"
)

// Step is the dialog position a session is waiting on.
type Step int

const (
	StepAmount Step = iota
	StepCategory
	StepDescription
)

// Session is one pending transaction entry. Kind is fixed at start; Amount
// and Category fill in as the dialog advances.
type Session struct {
	Kind     core.Kind
	Step     Step
	Amount   float64
	Category string
}

// Store keeps at most one session per user. Different users are fully
// independent; a concurrent second event for the same user races
// last-write-wins on the entry, which is accepted.
type Store struct {
	mu sync.Mutex
	m  map[int64]*Session
}

func NewStore() *Store {
	return &Store{m: make(map[int64]*Session)}
}

// Start creates a fresh session for the user, silently discarding any
// unfinished one.
func (s *Store) Start(userID int64, kind core.Kind) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Kind: kind, Step: StepAmount}
	s.m[userID] = sess
	return sess
}

// Get returns the user's live session, if any.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[userID]
	return sess, ok
}

// Remove drops the user's session. Removing an absent session is a no-op.
func (s *Store) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

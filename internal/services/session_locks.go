package services

import "sync"

// SessionLocks hands out one mutex per session so that answer writes,
// integrity events and submission delivery for the same session all
// serialize against the same lock. Different sessions never contend.
type SessionLocks struct {
	locks sync.Map
}

// NewSessionLocks creates an empty lock registry
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{}
}

// Acquire locks the session's mutex and returns the unlock function
func (l *SessionLocks) Acquire(sessionID string) func() {
	value, _ := l.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Forget drops the mutex of an evicted session
func (l *SessionLocks) Forget(sessionID string) {
	l.locks.Delete(sessionID)
}

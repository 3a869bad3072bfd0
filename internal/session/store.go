// Package session keeps in-flight assessment sessions in memory.
package session

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/haniscreator/mediclue/internal/assessment"
)

// ErrNotFound is returned for missing, expired or foreign sessions.
var ErrNotFound = errors.New("session not found")

const DefaultTTL = 30 * time.Minute

// Store holds sessions until they complete, are cancelled or expire.
type Store struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewStore creates a store whose entries live for ttl after their last write.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{c: cache.New(ttl, ttl/2), ttl: ttl}
}

// Put stores (or refreshes) s.
func (st *Store) Put(s *assessment.Session) {
	st.c.Set(s.ID, s, st.ttl)
}

// Get returns the session with id if it belongs to userID.
func (st *Store) Get(userID, id string) (*assessment.Session, error) {
	v, ok := st.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s, ok := v.(*assessment.Session)
	if !ok || s.UserID != userID {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes the session with id if it belongs to userID.
func (st *Store) Delete(userID, id string) error {
	if _, err := st.Get(userID, id); err != nil {
		return err
	}
	st.c.Delete(id)
	return nil
}

// Len reports the number of live sessions, including expired ones not yet
// swept.
func (st *Store) Len() int {
	return st.c.ItemCount()
}

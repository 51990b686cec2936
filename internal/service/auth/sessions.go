package auth

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/DevGolamSever/mind-ease/internal/model/user"
)

// SessionStore tracks live sessions keyed by token. Entries expire with the
// configured TTL so abandoned sessions age out on their own.
type SessionStore struct {
	cache *gocache.Cache
}

// NewSessionStore creates a session cache whose entries expire after ttl and
// are purged every ten minutes.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{cache: gocache.New(ttl, 10*time.Minute)}
}

// Save records a session under its token.
func (s *SessionStore) Save(session user.Session) {
	s.cache.Set(session.Token, session, gocache.DefaultExpiration)
}

// Get retrieves a live session by token.
func (s *SessionStore) Get(token string) (user.Session, bool) {
	if x, found := s.cache.Get(token); found {
		return x.(user.Session), true
	}
	return user.Session{}, false
}

// Delete removes a session, signing the token out.
func (s *SessionStore) Delete(token string) {
	s.cache.Delete(token)
}

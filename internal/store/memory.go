package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
	"github.com/DevGolamSever/mind-ease/internal/model/mood"
	"github.com/DevGolamSever/mind-ease/internal/model/user"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserRequired = errors.New("user id is required")
)

// MemoryStore keeps all collections in process memory behind one RWMutex.
// Persistence is last-write-wins per user, which matches the product's
// single-session-per-browser ownership model.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]user.User // keyed by lowercased email
	messages map[string][]chat.Message
	moods    map[string][]mood.Entry
}

// NewMemoryStore bootstraps an empty in-memory gateway.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]user.User),
		messages: make(map[string][]chat.Message),
		moods:    make(map[string][]mood.Entry),
	}
}

// CreateUser registers an account. Email addresses are unique, compared
// case-insensitively.
func (s *MemoryStore) CreateUser(_ context.Context, u user.User) error {
	key := strings.ToLower(u.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[key]; ok {
		return ErrUserExists
	}
	s.users[key] = u
	return nil
}

// FindUserByEmail retrieves an account record by email.
func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	return u, ok
}

// Messages returns the stored transcript for a user in insertion order.
func (s *MemoryStore) Messages(_ context.Context, userID string) ([]chat.Message, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[userID]
	copied := make([]chat.Message, len(msgs))
	copy(copied, msgs)
	return copied, nil
}

// AddMessage appends one message to the user's transcript.
func (s *MemoryStore) AddMessage(_ context.Context, userID string, msg chat.Message) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[userID] = append(s.messages[userID], msg)
	return nil
}

// ClearMessages truncates the user's transcript. Mood history and the
// account record are untouched.
func (s *MemoryStore) ClearMessages(_ context.Context, userID string) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[userID] = nil
	return nil
}

// Moods returns the user's journal entries.
func (s *MemoryStore) Moods(_ context.Context, userID string) ([]mood.Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.moods[userID]
	copied := make([]mood.Entry, len(entries))
	copy(copied, entries)
	return copied, nil
}

// AddMood appends one journal entry.
func (s *MemoryStore) AddMood(_ context.Context, userID string, entry mood.Entry) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.moods[userID] = append(s.moods[userID], entry)
	return nil
}

// DeleteMood removes one entry by id. Deleting an absent id is not an error.
func (s *MemoryStore) DeleteMood(_ context.Context, userID, moodID string) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.moods[userID]
	for i, entry := range entries {
		if entry.ID == moodID {
			s.moods[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// ReplaceMoods swaps the user's entire mood log, used when a remote fetch
// supersedes the local copy.
func (s *MemoryStore) ReplaceMoods(_ context.Context, userID string, entries []mood.Entry) error {
	if userID == "" {
		return ErrUserRequired
	}

	copied := make([]mood.Entry, len(entries))
	copy(copied, entries)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.moods[userID] = copied
	return nil
}

package mood

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/DevGolamSever/mind-ease/internal/model/mood"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

// ErrScoreOutOfRange rejects scores outside the 1-10 scale before any side
// effect happens.
var ErrScoreOutOfRange = errors.New("mood score must be between 1 and 10")

// RemoteSource is an optional remote mood backend consulted before the local
// log.
type RemoteSource interface {
	Fetch(ctx context.Context, userID string) ([]mood.Entry, error)
}

// Service is the mood journal: local log as the write target, with an
// optional remote source read cache-aside. Reads report which path served
// them so the fallback stays observable.
type Service struct {
	store  store.Store
	remote RemoteSource
	cache  *gocache.Cache
}

// NewService builds the journal service. remote may be nil, in which case
// every read is local.
func NewService(st store.Store, remote RemoteSource) *Service {
	return &Service{
		store:  st,
		remote: remote,
		cache:  gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// Get returns the user's entries and the source that served them. With a
// remote configured the live fetch wins and refreshes both the snapshot
// cache and the local log; on remote failure the last snapshot is used, then
// the local log.
func (s *Service) Get(ctx context.Context, userID string) ([]mood.Entry, mood.Source, error) {
	if s.remote == nil {
		entries, err := s.store.Moods(ctx, userID)
		return entries, mood.SourceLocal, err
	}

	entries, err := s.remote.Fetch(ctx, userID)
	if err == nil {
		s.cache.Set(userID, entries, gocache.DefaultExpiration)
		if replaceErr := s.store.ReplaceMoods(ctx, userID, entries); replaceErr != nil {
			log.Printf("[mood] failed to refresh local log for user=%s: %v", userID, replaceErr)
		}
		return append([]mood.Entry(nil), entries...), mood.SourceFresh, nil
	}

	log.Printf("[mood] remote fetch failed for user=%s, falling back: %v", userID, err)
	if cached, found := s.cache.Get(userID); found {
		snapshot := cached.([]mood.Entry)
		return append([]mood.Entry(nil), snapshot...), mood.SourceCache, nil
	}

	local, localErr := s.store.Moods(ctx, userID)
	return local, mood.SourceLocal, localErr
}

// Add validates and stores one journal entry. Out-of-range scores are
// rejected, not clamped.
func (s *Service) Add(ctx context.Context, userID string, score int, note string) (mood.Entry, error) {
	if score < 1 || score > 10 {
		return mood.Entry{}, ErrScoreOutOfRange
	}

	entry := mood.Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
		Score:     score,
		Note:      note,
	}

	if err := s.store.AddMood(ctx, userID, entry); err != nil {
		return mood.Entry{}, err
	}
	return entry, nil
}

// Delete removes one entry. Deleting an id that no longer exists is not an
// error.
func (s *Service) Delete(ctx context.Context, userID, moodID string) error {
	return s.store.DeleteMood(ctx, userID, moodID)
}

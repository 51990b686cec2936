package store

import (
	"context"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
	"github.com/DevGolamSever/mind-ease/internal/model/mood"
	"github.com/DevGolamSever/mind-ease/internal/model/user"
)

// Store is the persistence gateway: per-user message and mood logs plus the
// account table. Each collection is namespaced by user id.
type Store interface {
	// Accounts.
	CreateUser(ctx context.Context, u user.User) error
	FindUserByEmail(ctx context.Context, email string) (user.User, bool)

	// Message log, append-only and chronological.
	Messages(ctx context.Context, userID string) ([]chat.Message, error)
	AddMessage(ctx context.Context, userID string, msg chat.Message) error
	ClearMessages(ctx context.Context, userID string) error

	// Mood log. Reads are unordered; callers sort for display.
	Moods(ctx context.Context, userID string) ([]mood.Entry, error)
	AddMood(ctx context.Context, userID string, entry mood.Entry) error
	DeleteMood(ctx context.Context, userID, moodID string) error
	ReplaceMoods(ctx context.Context, userID string, entries []mood.Entry) error
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/DevGolamSever/mind-ease/internal/config"
	"github.com/DevGolamSever/mind-ease/internal/model/chat"
)

// Service maintains one generative conversation per user and exposes each
// turn as an incremental stream. A user's session handle is replaced
// wholesale on reset or failure; no partial mutation happens.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]

	mu       sync.Mutex
	sessions map[string]*session
}

// session holds the running history for one user's remote conversation.
type session struct {
	history []*schema.Message
}

// NewService builds the chat chain. A missing credential is not fatal here:
// the service still constructs and every turn fails with ErrNotConfigured,
// which the transcript layer renders inline.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	svc := &Service{
		cfg:      cfg,
		sessions: make(map[string]*session),
	}

	if !cfg.Enabled() {
		return svc, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// Enabled reports whether turns can reach the remote service.
func (s *Service) Enabled() bool {
	return s.chain != nil
}

// SendTurn issues one user utterance against the user's session and returns
// a forward-only stream of reply chunks. When no session exists one is
// created, seeded with the supplied transcript so the remote model keeps
// context across reloads.
func (s *Service) SendTurn(ctx context.Context, userID, text string, tone chat.Tone, seed []chat.Message) (*TurnStream, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	sess := s.ensureSession(userID, seed)
	query := withTone(text, tone)

	s.mu.Lock()
	history := append([]*schema.Message(nil), sess.history...)
	s.mu.Unlock()

	input := map[string]any{
		"system":  systemInstruction,
		"history": history,
		"query":   query,
	}

	reader, err := s.chain.Stream(ctx, input)
	if err != nil {
		s.Reset(userID)
		return nil, classifyRemoteError(err)
	}

	return &TurnStream{
		svc:      s,
		reader:   reader,
		userID:   userID,
		userText: text,
	}, nil
}

// Reset discards the user's session handle. The next turn re-initializes
// from scratch.
func (s *Service) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *Service) ensureSession(userID string, seed []chat.Message) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{history: historyMessages(seed)}
		s.sessions[userID] = sess
		log.Printf("[ai] session initialized for user=%s seeded=%d", userID, len(sess.history))
	}
	return sess
}

// commitTurn records a completed exchange in the session history. Dropped
// silently if the session was reset mid-stream.
func (s *Service) commitTurn(userID, userText, replyText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return
	}
	sess.history = append(sess.history,
		schema.UserMessage(userText),
		schema.AssistantMessage(replyText, nil),
	)
}

// TurnStream adapts the model's stream reader to transcript chunks. Any
// receive failure tears the owning session down so the next turn starts
// clean.
type TurnStream struct {
	svc      *Service
	reader   *schema.StreamReader[*schema.Message]
	userID   string
	userText string
	full     []byte
}

// Recv returns the next chunk. io.EOF marks a natural end of the reply, at
// which point the exchange has been committed to session history.
func (t *TurnStream) Recv() (chat.StreamChunk, error) {
	for {
		msg, err := t.reader.Recv()
		if errors.Is(err, io.EOF) {
			t.svc.commitTurn(t.userID, t.userText, string(t.full))
			return chat.StreamChunk{}, io.EOF
		}
		if err != nil {
			t.svc.Reset(t.userID)
			return chat.StreamChunk{}, classifyRemoteError(err)
		}
		if msg == nil {
			continue
		}

		t.full = append(t.full, msg.Content...)

		var grounding []chat.GroundingChunk
		if t.svc.cfg.SearchEnabled {
			grounding = groundingFromExtra(msg)
		}
		return chat.StreamChunk{
			TextDelta: msg.Content,
			Grounding: grounding,
		}, nil
	}
}

// Close releases the underlying reader.
func (t *TurnStream) Close() {
	t.reader.Close()
}

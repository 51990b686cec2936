package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrTurnInProgress = errors.New("a reply is already streaming")
)

// TurnStream is one in-flight model reply.
type TurnStream interface {
	Recv() (chat.StreamChunk, error)
	Close()
}

// Streamer is the generative session boundary. Session errors come back from
// Recv or SendTurn and are re-expressed through SyntheticReply.
type Streamer interface {
	SendTurn(ctx context.Context, userID, text string, tone chat.Tone, seed []chat.Message) (TurnStream, error)
	Reset(userID string)
	SyntheticReply(err error) string
}

// TurnEvent is one step of a turn as seen by the transport layer.
type TurnEvent struct {
	// Type is one of "user", "start", "delta", "end".
	Type    string
	Message *chat.Message
	Chunk   *chat.StreamChunk
}

// Emitter receives turn events in emission order.
type Emitter func(TurnEvent)

// conversation tracks per-user turn state. The generation counter increments
// on every clear or reset; a stream started under an older generation must
// not persist its reply.
type conversation struct {
	generation uint64
	streaming  bool
}

// Service sequences one user turn end-to-end and keeps visible and persisted
// state consistent.
type Service struct {
	store    store.Store
	streamer Streamer

	mu    sync.Mutex
	convs map[string]*conversation
}

// NewService wires the orchestrator to its persistence gateway and
// generative session.
func NewService(st store.Store, streamer Streamer) *Service {
	return &Service{
		store:    st,
		streamer: streamer,
		convs:    make(map[string]*conversation),
	}
}

// SendTurn runs one turn: persist the user message, stream the reply through
// emit, and persist the completed reply. Session failures are swallowed here
// and rendered as synthetic assistant text; only input validation and
// overlap errors surface to the caller.
func (s *Service) SendTurn(ctx context.Context, userID, text string, tone chat.Tone, emit Emitter) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	gen, err := s.beginTurn(userID)
	if err != nil {
		return err
	}
	defer s.endTurn(userID)

	// Seed history is captured before the new user message lands, because
	// the turn request itself carries the utterance.
	seed, err := s.store.Messages(ctx, userID)
	if err != nil {
		return err
	}

	userMsg := newMessage(chat.RoleUser, trimmed)
	if err := s.store.AddMessage(ctx, userID, userMsg); err != nil {
		return err
	}
	emit(TurnEvent{Type: "user", Message: &userMsg})

	reply := newMessage(chat.RoleModel, "")
	emit(TurnEvent{Type: "start", Message: &reply})

	stream, err := s.streamer.SendTurn(ctx, userID, trimmed, tone, seed)
	if err != nil {
		s.finishWithSynthetic(ctx, userID, gen, &reply, err, emit)
		return nil
	}
	defer stream.Close()

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			s.finishWithSynthetic(ctx, userID, gen, &reply, recvErr, emit)
			return nil
		}

		reply.Text += chunk.TextDelta
		if chunk.Grounding != nil {
			reply.Grounding = chunk.Grounding
		}
		emit(TurnEvent{Type: "delta", Chunk: &chunk})
	}

	s.persistReply(ctx, userID, gen, reply)
	emit(TurnEvent{Type: "end", Message: &reply})
	return nil
}

// Messages returns the stored transcript, or a single unpersisted welcome
// message when the log is empty.
func (s *Service) Messages(ctx context.Context, userID, name string) ([]chat.Message, error) {
	msgs, err := s.store.Messages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []chat.Message{welcomeMessage(name)}, nil
	}
	return msgs, nil
}

// ClearChat truncates the transcript and tears down the generative session.
// A reply streaming at that moment keeps going, but its generation check
// stops the stale persist.
func (s *Service) ClearChat(ctx context.Context, userID string) error {
	s.bumpGeneration(userID)

	if err := s.store.ClearMessages(ctx, userID); err != nil {
		return err
	}
	s.streamer.Reset(userID)
	log.Printf("[chat] transcript cleared for user=%s", userID)
	return nil
}

// Reset drops the generative session without touching stored messages, used
// at sign-out.
func (s *Service) Reset(userID string) {
	s.bumpGeneration(userID)
	s.streamer.Reset(userID)
}

// ExportTranscript renders the stored transcript as plain text for download.
func (s *Service) ExportTranscript(ctx context.Context, userID string) (string, error) {
	msgs, err := s.store.Messages(ctx, userID)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		author := "Mind Ease"
		if msg.Role == chat.RoleUser {
			author = "You"
		}
		stamp := time.UnixMilli(msg.Timestamp).Format("2006-01-02 15:04")
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", stamp, author, msg.Text))
	}
	return strings.Join(lines, "\n\n"), nil
}

func (s *Service) beginTurn(userID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.conv(userID)
	if conv.streaming {
		return 0, ErrTurnInProgress
	}
	conv.streaming = true
	return conv.generation, nil
}

func (s *Service) endTurn(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(userID).streaming = false
}

func (s *Service) bumpGeneration(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(userID).generation++
}

func (s *Service) currentGeneration(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv(userID).generation
}

// conv must be called with s.mu held.
func (s *Service) conv(userID string) *conversation {
	c, ok := s.convs[userID]
	if !ok {
		c = &conversation{}
		s.convs[userID] = c
	}
	return c
}

// finishWithSynthetic appends the assistant-voice error text to whatever
// partial reply already streamed, then ends the turn normally.
func (s *Service) finishWithSynthetic(ctx context.Context, userID string, gen uint64, reply *chat.Message, cause error, emit Emitter) {
	synthetic := s.streamer.SyntheticReply(cause)
	if reply.Text != "" {
		synthetic = "\n\n" + synthetic
	}
	reply.Text += synthetic

	emit(TurnEvent{Type: "delta", Chunk: &chat.StreamChunk{TextDelta: synthetic}})
	s.persistReply(ctx, userID, gen, *reply)
	emit(TurnEvent{Type: "end", Message: reply})

	log.Printf("[chat] turn failed for user=%s: %v", userID, cause)
}

// persistReply stores the completed reply unless the conversation moved on
// while it streamed.
func (s *Service) persistReply(ctx context.Context, userID string, gen uint64, reply chat.Message) {
	if s.currentGeneration(userID) != gen {
		log.Printf("[chat] dropping stale reply for user=%s", userID)
		return
	}
	if err := s.store.AddMessage(ctx, userID, reply); err != nil {
		log.Printf("[chat] failed to persist reply for user=%s: %v", userID, err)
	}
}

func newMessage(role chat.Role, text string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}

func welcomeMessage(name string) chat.Message {
	return chat.Message{
		ID:        "welcome",
		Role:      chat.RoleModel,
		Text:      fmt.Sprintf("Hello %s! I'm Mind Ease, your mental wellness companion. I'm here to listen, guide, and support you anytime. How are you feeling today?", name),
		Timestamp: time.Now().UnixMilli(),
	}
}

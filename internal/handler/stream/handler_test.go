package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

type scriptedStream struct {
	deltas []string
	idx    int
}

func (s *scriptedStream) Recv() (chat.StreamChunk, error) {
	if s.idx < len(s.deltas) {
		delta := s.deltas[s.idx]
		s.idx++
		return chat.StreamChunk{TextDelta: delta}, nil
	}
	return chat.StreamChunk{}, io.EOF
}

func (s *scriptedStream) Close() {}

type scriptedStreamer struct {
	deltas []string
}

func (s *scriptedStreamer) SendTurn(context.Context, string, string, chat.Tone, []chat.Message) (chatservice.TurnStream, error) {
	return &scriptedStream{deltas: s.deltas}, nil
}

func (s *scriptedStreamer) Reset(string) {}

func (s *scriptedStreamer) SyntheticReply(err error) string { return err.Error() }

func decodeFrames(t *testing.T, body string) []StreamResponse {
	t.Helper()

	var frames []StreamResponse
	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if !strings.HasPrefix(block, "data: ") {
			t.Fatalf("unexpected SSE block: %q", block)
		}

		var frame StreamResponse
		if err := json.Unmarshal([]byte(strings.TrimPrefix(block, "data: ")), &frame); err != nil {
			t.Fatalf("failed to decode frame %q: %v", block, err)
		}
		frames = append(frames, frame)
	}
	return frames
}

func TestHandleTurnEmitsFramesInOrder(t *testing.T) {
	svc := chatservice.NewService(store.NewMemoryStore(), &scriptedStreamer{deltas: []string{"Take a ", "deep breath."}})
	h := New(svc)
	rec := httptest.NewRecorder()

	if err := h.HandleTurn(context.Background(), rec, "u1", "I feel tense", "casual"); err != nil {
		t.Fatalf("HandleTurn failed: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected event-stream content type, got %q", ct)
	}

	frames := decodeFrames(t, rec.Body.String())
	if len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d: %+v", len(frames), frames)
	}

	if frames[0].Event != "user" || frames[0].Content != "I feel tense" || frames[0].MessageID == "" {
		t.Errorf("unexpected user frame: %+v", frames[0])
	}
	if frames[1].Event != "start" || frames[1].MessageID == "" {
		t.Errorf("unexpected start frame: %+v", frames[1])
	}
	if frames[2].Event != "delta" || frames[2].Content != "Take a " {
		t.Errorf("unexpected first delta: %+v", frames[2])
	}
	if frames[3].Event != "delta" || frames[3].Content != "deep breath." {
		t.Errorf("unexpected second delta: %+v", frames[3])
	}

	end := frames[4]
	if end.Event != "end" || !end.Finished {
		t.Errorf("unexpected end frame: %+v", end)
	}
	if end.Content != "Take a deep breath." {
		t.Errorf("expected end frame to carry the full reply, got %q", end.Content)
	}
	if end.MessageID != frames[1].MessageID {
		t.Errorf("expected end frame to reference the started reply, got %q vs %q", end.MessageID, frames[1].MessageID)
	}
}

func TestHandleTurnRejectsEmptyMessage(t *testing.T) {
	svc := chatservice.NewService(store.NewMemoryStore(), &scriptedStreamer{})
	h := New(svc)
	rec := httptest.NewRecorder()

	err := h.HandleTurn(context.Background(), rec, "u1", "   ", "")
	if !errors.Is(err, chatservice.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	frames := decodeFrames(t, rec.Body.String())
	if len(frames) != 1 || frames[0].Event != "error" {
		t.Fatalf("expected a single error frame, got %+v", frames)
	}
	if frames[0].Error == "" {
		t.Error("expected error frame to carry a message")
	}
}

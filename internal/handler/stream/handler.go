package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler streams one chat turn over Server-Sent Events.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the stream handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// StreamResponse is one SSE frame of a turn.
type StreamResponse struct {
	Event     string                `json:"event"`
	MessageID string                `json:"messageId,omitempty"`
	Content   string                `json:"content,omitempty"`
	Grounding []chat.GroundingChunk `json:"groundingChunks,omitempty"`
	Timestamp int64                 `json:"timestamp,omitempty"`
	Finished  bool                  `json:"finished,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// HandleTurn runs a turn for the user and relays its events as SSE frames
// in arrival order.
func (h *Handler) HandleTurn(ctx context.Context, w http.ResponseWriter, userID, message, tone string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	err := h.chatSvc.SendTurn(ctx, userID, message, chat.ParseTone(tone), func(event chatservice.TurnEvent) {
		utils.SendSSEChunk(w, flusher, frameFor(event))
	})
	if err != nil {
		if errors.Is(err, chatservice.ErrEmptyMessage) || errors.Is(err, chatservice.ErrTurnInProgress) {
			utils.SendSSEChunk(w, flusher, StreamResponse{Event: "error", Error: err.Error()})
			return err
		}
		utils.SendSSEChunk(w, flusher, StreamResponse{Event: "error", Error: "turn failed"})
		return err
	}

	log.Printf("[stream] completed turn for user=%s", userID)
	return nil
}

func frameFor(event chatservice.TurnEvent) StreamResponse {
	switch event.Type {
	case "user", "start":
		return StreamResponse{
			Event:     event.Type,
			MessageID: event.Message.ID,
			Content:   event.Message.Text,
			Timestamp: event.Message.Timestamp,
		}
	case "delta":
		return StreamResponse{
			Event:     "delta",
			Content:   event.Chunk.TextDelta,
			Grounding: event.Chunk.Grounding,
		}
	case "end":
		return StreamResponse{
			Event:     "end",
			MessageID: event.Message.ID,
			Content:   event.Message.Text,
			Grounding: event.Message.Grounding,
			Timestamp: event.Message.Timestamp,
			Finished:  true,
		}
	default:
		return StreamResponse{Event: event.Type}
	}
}

package chat

import (
	"context"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
	"github.com/DevGolamSever/mind-ease/internal/service/ai"
)

// aiStreamer adapts the generative session service to the Streamer boundary.
type aiStreamer struct {
	svc *ai.Service
}

// WrapAI exposes an ai.Service as a Streamer.
func WrapAI(svc *ai.Service) Streamer {
	return aiStreamer{svc: svc}
}

func (a aiStreamer) SendTurn(ctx context.Context, userID, text string, tone chat.Tone, seed []chat.Message) (TurnStream, error) {
	stream, err := a.svc.SendTurn(ctx, userID, text, tone, seed)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func (a aiStreamer) Reset(userID string) {
	a.svc.Reset(userID)
}

func (a aiStreamer) SyntheticReply(err error) string {
	return a.svc.SyntheticReply(err)
}

package voice

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/DevGolamSever/mind-ease/internal/middleware"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	timerservice "github.com/DevGolamSever/mind-ease/internal/service/timer"
	voiceservice "github.com/DevGolamSever/mind-ease/internal/service/voice"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler bridges the browser's speech recognition to the voice command
// interceptor over a WebSocket. The browser does the audio-to-text work and
// sends final transcript segments; the server routes each one to a command
// or to the input buffer.
type Handler struct {
	chatSvc  *chatservice.Service
	timerSvc *timerservice.Service
	upgrader websocket.Upgrader
}

// New creates the voice handler.
func New(chatSvc *chatservice.Service, timerSvc *timerservice.Service) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		timerSvc: timerSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the voice WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voice/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type transcriptMessage struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
}

type inputMessage struct {
	Text string `json:"text"`
}

type errorMessage struct {
	Code string `json:"code"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[voice] upgrade failed for user=%s: %v", session.UserID, err)
		return
	}
	defer conn.Close()

	// One interceptor per connection; it dies with the socket so no
	// recognition session outlives its owning view.
	interceptor := voiceservice.New()
	defer interceptor.Stop()

	log.Printf("[voice] connection opened for user=%s", session.UserID)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[voice] connection error for user=%s: %v", session.UserID, err)
			}
			return
		}

		h.dispatch(conn, session.UserID, interceptor, msg)
	}
}

func (h *Handler) dispatch(conn *websocket.Conn, userID string, interceptor *voiceservice.Interceptor, msg inboundMessage) {
	switch msg.Type {
	case "toggle":
		listening := interceptor.Toggle()
		h.send(conn, "listening", map[string]bool{"listening": listening})

	case "input":
		var payload inputMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.send(conn, "notice", map[string]string{"message": "invalid input payload"})
			return
		}
		interceptor.SetInput(payload.Text)

	case "transcript":
		var payload transcriptMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.send(conn, "notice", map[string]string{"message": "invalid transcript payload"})
			return
		}
		if !payload.IsFinal {
			// Interim segments are never consumed.
			return
		}
		h.routeTranscript(conn, userID, interceptor, payload.Text)

	case "error":
		var payload errorMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		interceptor.Stop()
		h.send(conn, "notice", map[string]any{
			"message": voiceservice.ErrorMessage(payload.Code),
			"soft":    voiceservice.IsSoftError(payload.Code),
		})
		h.send(conn, "listening", map[string]bool{"listening": false})

	default:
		h.send(conn, "notice", map[string]string{"message": "unknown message type"})
	}
}

func (h *Handler) routeTranscript(conn *websocket.Conn, userID string, interceptor *voiceservice.Interceptor, text string) {
	result := interceptor.HandleTranscript(text)

	switch result.Action {
	case voiceservice.ActionClearChat:
		if err := h.chatSvc.ClearChat(context.Background(), userID); err != nil {
			log.Printf("[voice] clear chat failed for user=%s: %v", userID, err)
		}
		h.send(conn, "command", map[string]string{"action": string(result.Action)})
		h.send(conn, "listening", map[string]bool{"listening": false})

	case voiceservice.ActionOpenTimer:
		h.timerSvc.Start(userID, timerservice.DefaultDuration)
		h.send(conn, "command", map[string]string{"action": string(result.Action)})
		h.send(conn, "listening", map[string]bool{"listening": false})

	case voiceservice.ActionAppend:
		h.send(conn, "input", map[string]string{"input": result.Input})
	}
}

func (h *Handler) send(conn *websocket.Conn, msgType string, data interface{}) {
	out := outgoingMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("[voice] failed to write %s message: %v", msgType, err)
	}
}

package voice

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/DevGolamSever/mind-ease/internal/middleware"
	chatmodel "github.com/DevGolamSever/mind-ease/internal/model/chat"
	"github.com/DevGolamSever/mind-ease/internal/model/user"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	timerservice "github.com/DevGolamSever/mind-ease/internal/service/timer"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

type staticVerifier struct{ session user.Session }

func (v staticVerifier) Verify(string) (user.Session, error) {
	return v.session, nil
}

type idleStream struct{}

func (idleStream) Recv() (chatmodel.StreamChunk, error) { return chatmodel.StreamChunk{}, io.EOF }
func (idleStream) Close()                               {}

type idleStreamer struct{}

func (idleStreamer) SendTurn(context.Context, string, string, chatmodel.Tone, []chatmodel.Message) (chatservice.TurnStream, error) {
	return idleStream{}, nil
}
func (idleStreamer) Reset(string)                    {}
func (idleStreamer) SyntheticReply(err error) string { return err.Error() }

func dialTestSocket(t *testing.T, st *store.MemoryStore, timerSvc *timerservice.Service) *websocket.Conn {
	t.Helper()

	chatSvc := chatservice.NewService(st, idleStreamer{})
	h := New(chatSvc, timerSvc)

	r := chi.NewRouter()
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireSession(staticVerifier{session: user.Session{UserID: "u1", Name: "Ann"}}))
		h.RegisterRoutes(protected)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/voice/ws?token=test-token"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	if err := conn.WriteJSON(map[string]json.RawMessage{
		"type": json.RawMessage(`"` + msgType + `"`),
		"data": payload,
	}); err != nil {
		t.Fatalf("failed to write %s message: %v", msgType, err)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()

	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	return msg.Type, msg.Data
}

func TestToggleReportsListeningState(t *testing.T) {
	conn := dialTestSocket(t, store.NewMemoryStore(), timerservice.NewService())

	sendMessage(t, conn, "toggle", struct{}{})
	msgType, data := readMessage(t, conn)
	if msgType != "listening" {
		t.Fatalf("expected listening message, got %q", msgType)
	}

	var payload struct {
		Listening bool `json:"listening"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if !payload.Listening {
		t.Fatal("expected first toggle to start listening")
	}
}

func TestTranscriptAppendsToInput(t *testing.T) {
	conn := dialTestSocket(t, store.NewMemoryStore(), timerservice.NewService())

	sendMessage(t, conn, "toggle", struct{}{})
	readMessage(t, conn)

	sendMessage(t, conn, "input", map[string]string{"text": "so far"})
	sendMessage(t, conn, "transcript", map[string]any{"text": "and more", "isFinal": true})

	msgType, data := readMessage(t, conn)
	if msgType != "input" {
		t.Fatalf("expected input message, got %q", msgType)
	}

	var payload struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Input != "so far and more" {
		t.Fatalf("expected accumulated input, got %q", payload.Input)
	}
}

func TestClearChatCommandClearsTranscript(t *testing.T) {
	st := store.NewMemoryStore()
	_ = st.AddMessage(context.Background(), "u1", chatmodel.Message{ID: "m1", Role: chatmodel.RoleUser, Text: "hi"})
	conn := dialTestSocket(t, st, timerservice.NewService())

	sendMessage(t, conn, "toggle", struct{}{})
	readMessage(t, conn)

	sendMessage(t, conn, "transcript", map[string]any{"text": "clear chat", "isFinal": true})

	msgType, data := readMessage(t, conn)
	if msgType != "command" {
		t.Fatalf("expected command message, got %q", msgType)
	}
	var payload struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Action != "clear_chat" {
		t.Fatalf("expected clear_chat action, got %q", payload.Action)
	}

	msgType, _ = readMessage(t, conn)
	if msgType != "listening" {
		t.Fatalf("expected listening update after command, got %q", msgType)
	}

	msgs, _ := st.Messages(context.Background(), "u1")
	if len(msgs) != 0 {
		t.Fatalf("expected cleared transcript, got %d messages", len(msgs))
	}
}

func TestOpenTimerCommandStartsSession(t *testing.T) {
	timerSvc := timerservice.NewService()
	conn := dialTestSocket(t, store.NewMemoryStore(), timerSvc)

	sendMessage(t, conn, "toggle", struct{}{})
	readMessage(t, conn)

	sendMessage(t, conn, "transcript", map[string]any{"text": "open timer please", "isFinal": true})

	msgType, _ := readMessage(t, conn)
	if msgType != "command" {
		t.Fatalf("expected command message, got %q", msgType)
	}
	readMessage(t, conn) // listening update

	state, err := timerSvc.State("u1")
	if err != nil {
		t.Fatalf("expected an active timer session: %v", err)
	}
	if state.Duration != 300 {
		t.Fatalf("expected default duration, got %+v", state)
	}
}

func TestInterimTranscriptIgnored(t *testing.T) {
	conn := dialTestSocket(t, store.NewMemoryStore(), timerservice.NewService())

	sendMessage(t, conn, "toggle", struct{}{})
	readMessage(t, conn)

	sendMessage(t, conn, "transcript", map[string]any{"text": "clear chat", "isFinal": false})
	sendMessage(t, conn, "transcript", map[string]any{"text": "hello", "isFinal": true})

	// The interim segment produced nothing; the final one appends.
	msgType, data := readMessage(t, conn)
	if msgType != "input" {
		t.Fatalf("expected input message, got %q", msgType)
	}
	var payload struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Input != "hello" {
		t.Fatalf("expected only the final segment, got %q", payload.Input)
	}
}

func TestRecognitionErrorStopsListening(t *testing.T) {
	conn := dialTestSocket(t, store.NewMemoryStore(), timerservice.NewService())

	sendMessage(t, conn, "toggle", struct{}{})
	readMessage(t, conn)

	sendMessage(t, conn, "error", map[string]string{"code": "no-speech"})

	msgType, data := readMessage(t, conn)
	if msgType != "notice" {
		t.Fatalf("expected notice message, got %q", msgType)
	}
	var payload struct {
		Message string `json:"message"`
		Soft    bool   `json:"soft"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if !payload.Soft {
		t.Fatal("expected no-speech to be a soft error")
	}
	if payload.Message == "" {
		t.Fatal("expected a user-facing message")
	}

	msgType, _ = readMessage(t, conn)
	if msgType != "listening" {
		t.Fatalf("expected listening update, got %q", msgType)
	}
}

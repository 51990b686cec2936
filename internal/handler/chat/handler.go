package chat

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DevGolamSever/mind-ease/internal/middleware"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler serves the stored transcript: list, clear, and export.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the transcript endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/messages", h.handleListMessages)
	r.Delete("/messages", h.handleClearChat)
	r.Get("/messages/export", h.handleExport)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	msgs, err := h.chatSvc.Messages(r.Context(), session.UserID, session.Name)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	utils.RespondJSON(w, http.StatusOK, msgs)
}

func (h *Handler) handleClearChat(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	if err := h.chatSvc.ClearChat(r.Context(), session.UserID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to clear chat")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	transcript, err := h.chatSvc.ExportTranscript(r.Context(), session.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to export transcript")
		return
	}

	slug := strings.ToLower(strings.ReplaceAll(session.Name, " ", "-"))
	filename := fmt.Sprintf("mind-ease-chat-%s-%s.txt", slug, time.Now().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(transcript))
}

package timer

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DevGolamSever/mind-ease/internal/middleware"
	timerservice "github.com/DevGolamSever/mind-ease/internal/service/timer"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler serves mindfulness timer sessions.
type Handler struct {
	timerSvc *timerservice.Service
}

// New creates the timer handler.
func New(timerSvc *timerservice.Service) *Handler {
	return &Handler{timerSvc: timerSvc}
}

// RegisterRoutes mounts the timer endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/timer/presets", h.handlePresets)
	r.Post("/timer/start", h.handleStart)
	r.Post("/timer/stop", h.handleStop)
	r.Get("/timer", h.handleState)
}

type startRequest struct {
	Duration int `json:"duration"`
}

func (h *Handler) handlePresets(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"presets": timerservice.Presets,
		"default": int(timerservice.DefaultDuration / time.Second),
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var payload startRequest
	if r.Body != nil {
		// An empty body means the default preset.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	h.timerSvc.Start(session.UserID, time.Duration(payload.Duration)*time.Second)

	state, err := h.timerSvc.State(session.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to start timer")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, state)
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	h.timerSvc.Stop(session.UserID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	state, err := h.timerSvc.State(session.UserID)
	if err != nil {
		if errors.Is(err, timerservice.ErrNoActiveSession) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to read timer")
		return
	}
	utils.RespondJSON(w, http.StatusOK, state)
}

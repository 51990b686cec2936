package mood

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/DevGolamSever/mind-ease/internal/middleware"
	moodmodel "github.com/DevGolamSever/mind-ease/internal/model/mood"
	moodservice "github.com/DevGolamSever/mind-ease/internal/service/mood"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler serves the mood journal.
type Handler struct {
	moodSvc  *moodservice.Service
	validate *validator.Validate
}

// New creates the mood handler.
func New(moodSvc *moodservice.Service) *Handler {
	return &Handler{
		moodSvc:  moodSvc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the journal endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/moods", h.handleList)
	r.Post("/moods", h.handleAdd)
	r.Delete("/moods/{moodID}", h.handleDelete)
	r.Get("/moods/summary", h.handleSummary)
}

type addMoodRequest struct {
	Score int    `json:"score" validate:"required,min=1,max=10"`
	Note  string `json:"note"`
}

// listResponse reports the entries together with the path that served them,
// so clients and tests can tell a live fetch from a fallback.
type listResponse struct {
	Entries []moodmodel.Entry `json:"entries"`
	Source  moodmodel.Source  `json:"source"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	entries, source, err := h.moodSvc.Get(r.Context(), session.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load moods")
		return
	}

	if entries == nil {
		entries = []moodmodel.Entry{}
	}
	utils.RespondJSON(w, http.StatusOK, listResponse{Entries: entries, Source: source})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var payload addMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "score must be between 1 and 10")
		return
	}

	entry, err := h.moodSvc.Add(r.Context(), session.UserID, payload.Score, payload.Note)
	if err != nil {
		if errors.Is(err, moodservice.ErrScoreOutOfRange) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to save mood")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	moodID := chi.URLParam(r, "moodID")
	if err := h.moodSvc.Delete(r.Context(), session.UserID, moodID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete mood")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	summary, err := h.moodSvc.Summarize(r.Context(), session.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to summarize moods")
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary)
}

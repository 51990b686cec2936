package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	resourcemodel "github.com/DevGolamSever/mind-ease/internal/model/resource"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler serves the static wellness library.
type Handler struct {
	store resourcemodel.Store
}

// New creates the resource handler.
func New(store resourcemodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the library endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.handleList)
	r.Get("/resources/{resourceID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" {
		utils.RespondJSON(w, http.StatusOK, h.store.ListByCategory(resourcemodel.Category(category)))
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "resourceID")
	item, ok := h.store.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

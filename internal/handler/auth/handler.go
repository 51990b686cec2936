package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/DevGolamSever/mind-ease/internal/middleware"
	authservice "github.com/DevGolamSever/mind-ease/internal/service/auth"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// Handler serves account sign-up, sign-in, and sign-out.
type Handler struct {
	authSvc  *authservice.Service
	chatSvc  *chatservice.Service
	validate *validator.Validate
}

// New creates the auth handler.
func New(authSvc *authservice.Service, chatSvc *chatservice.Service) *Handler {
	return &Handler{
		authSvc:  authSvc,
		chatSvc:  chatSvc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.handleSignUp)
	r.Post("/auth/signin", h.handleSignIn)
}

// RegisterProtectedRoutes mounts the endpoints requiring a live session.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/signout", h.handleSignOut)
	r.Get("/auth/me", h.handleMe)
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var payload signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "email, password (6+ characters) and name are required")
		return
	}

	u, err := h.authSvc.SignUp(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	})
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var payload signInRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.authSvc.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	h.authSvc.SignOut(session.Token)
	// The generative session dies with the user session.
	h.chatSvc.Reset(session.UserID)

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"id":    session.UserID,
		"email": strings.ToLower(session.Email),
		"name":  session.Name,
	})
}

package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authHandler "github.com/DevGolamSever/mind-ease/internal/handler/auth"
	chatHandler "github.com/DevGolamSever/mind-ease/internal/handler/chat"
	moodHandler "github.com/DevGolamSever/mind-ease/internal/handler/mood"
	resourceHandler "github.com/DevGolamSever/mind-ease/internal/handler/resource"
	streamHandler "github.com/DevGolamSever/mind-ease/internal/handler/stream"
	timerHandler "github.com/DevGolamSever/mind-ease/internal/handler/timer"
	voiceHandler "github.com/DevGolamSever/mind-ease/internal/handler/voice"
	"github.com/DevGolamSever/mind-ease/internal/middleware"
	resourceModel "github.com/DevGolamSever/mind-ease/internal/model/resource"
	authService "github.com/DevGolamSever/mind-ease/internal/service/auth"
	chatService "github.com/DevGolamSever/mind-ease/internal/service/chat"
	moodService "github.com/DevGolamSever/mind-ease/internal/service/mood"
	timerService "github.com/DevGolamSever/mind-ease/internal/service/timer"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(
	authSvc *authService.Service,
	chatSvc *chatService.Service,
	moodSvc *moodService.Service,
	timerSvc *timerService.Service,
	resources resourceModel.Store,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	auth := authHandler.New(authSvc, chatSvc)
	chat := chatHandler.New(chatSvc)
	stream := streamHandler.New(chatSvc)
	moods := moodHandler.New(moodSvc)
	res := resourceHandler.New(resources)
	timers := timerHandler.New(timerSvc)
	voice := voiceHandler.New(chatSvc, timerSvc)

	r.Route("/api", func(api chi.Router) {
		auth.RegisterRoutes(api)
		res.RegisterRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireSession(authSvc))

			auth.RegisterProtectedRoutes(protected)
			chat.RegisterRoutes(protected)
			moods.RegisterRoutes(protected)
			timers.RegisterRoutes(protected)
			voice.RegisterRoutes(protected)

			protected.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
				session, ok := middleware.SessionFrom(r.Context())
				if !ok {
					utils.RespondError(w, http.StatusUnauthorized, "missing session")
					return
				}

				message := r.URL.Query().Get("message")
				tone := r.URL.Query().Get("tone")
				if message == "" {
					utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
					return
				}

				if err := stream.HandleTurn(r.Context(), w, session.UserID, message, tone); err != nil {
					log.Printf("[stream] error handling request: %v", err)
				}
			})
		})
	})

	return r
}

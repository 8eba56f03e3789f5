package http

import (
	"net/http"
	"time"

	httpmw "github.com/Nycles/chat-service/internal/transport/http/middleware"
	"github.com/Nycles/chat-service/internal/transport/ws"
	"github.com/Nycles/chat-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, verifier httpmw.TokenVerifier, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(httputil.MiddlewareLogging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", httputil.HeaderRequestID},
	}))

	// WS endpoint; handshake сам проверяет токен
	r.Get("/ws", wsServer.HandleWS)

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/register", h.Register)
		api.Post("/login", h.Login)

		// маршруты под Bearer-токеном
		api.Group(func(pr chi.Router) {
			pr.Use(httpmw.AuthMiddleware(verifier))
			pr.Use(middlewareChi.Timeout(30 * time.Second))

			pr.Post("/user/image", h.UploadImage)

			pr.Route("/chat", func(cr chi.Router) {
				cr.Post("/rooms", h.CreateRoom)
				cr.Get("/rooms", h.ListRooms)
				cr.Get("/messages", h.ListMessages)
			})
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Delete("/auth/account", s.handleDeleteAccount)
			r.Post("/upload", s.handleUpload)

			r.Get("/decks", s.handleListDecks)
			r.Get("/decks/{id}", s.handleGetDeck)
			r.Delete("/decks/{id}", s.handleDeleteDeck)
			r.Post("/decks/{id}/cards", s.handleAddCard)
			r.Get("/decks/{id}/export", s.handleExportDeck)

			r.Put("/cards/{id}", s.handleUpdateCard)
			r.Delete("/cards/{id}", s.handleDeleteCard)

			r.Post("/sessions", s.handleSubmitSession)
			r.Get("/sessions", s.handleListSessions)

			r.Get("/stats", s.handleGetStats)
			r.Post("/stats/reset", s.handleResetStats)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(r)
}

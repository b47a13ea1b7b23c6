package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"telegram-pager-bot/internal/pager"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SessionStats определяет интерфейс для источника сведений об активных
// сессиях пагинации. Реализуется реестром сессий.
type SessionStats interface {
	Len() int
	Refs() []pager.MessageRef
}

// Server представляет служебный HTTP-сервер бота.
type Server struct {
	HTTPServer *http.Server
	stats      SessionStats
}

// New создает новый экземпляр Server.
func New(addr string, stats SessionStats) *Server {
	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	// Конечная точка для проверки работоспособности
	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		// Работоспособность Telegram API проверяется при запуске бота.
		// Если сервер запущен, предполагается, что бот в порядке.
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	})

	// Маршруты API
	chiRouter.Route("/api/v1", func(r chi.Router) {
		// Конечная точка со сводкой по активным сессиям пагинации
		r.Get("/sessions", func(w http.ResponseWriter, r *http.Request) {
			refs := stats.Refs()
			if refs == nil {
				refs = []pager.MessageRef{}
			}

			response := struct {
				ActiveSessions int               `json:"active_sessions"`
				Refs           []pager.MessageRef `json:"refs"`
			}{
				ActiveSessions: stats.Len(),
				Refs:           refs,
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(response)
		})
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      chiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		HTTPServer: httpServer,
		stats:      stats,
	}
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Завершение работы HTTP-сервера")
	return s.HTTPServer.Shutdown(ctx)
}

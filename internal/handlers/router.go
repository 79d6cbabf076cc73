package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go_4_vocab_trainer/internal/config"
	"go_4_vocab_trainer/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Handlers struct {
	Card   *CardHandler
	Review *ReviewHandler
	Stats  *StatsHandler
}

type RouterOptions struct {
	Logger *slog.Logger
	// Auth は所有者IDをコンテキストに入れるミドルウェア (JWT か開発用ヘッダー)
	Auth   func(http.Handler) http.Handler
	CORS   config.CORSConfig
	Health func(ctx context.Context) error
}

// AuthMiddleware は設定に応じて JWT 認証か開発用ヘッダー認証を選びます
func AuthMiddleware(cfg *config.Config, logger *slog.Logger) func(http.Handler) http.Handler {
	if cfg.Auth.Enabled {
		logger.Info("Applying JWT authentication middleware")
		return middleware.JWTAuthMiddleware(cfg)
	}
	logger.Warn("Authentication disabled, using X-Owner-ID header (development only)")
	return middleware.DevOwnerContextMiddleware
}

func NewRouter(h Handlers, opts RouterOptions) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   opts.CORS.AllowedOrigins,
		AllowedMethods:   opts.CORS.AllowedMethods,
		AllowedHeaders:   opts.CORS.AllowedHeaders,
		ExposedHeaders:   opts.CORS.ExposedHeaders,
		AllowCredentials: opts.CORS.AllowCredentials,
		MaxAge:           opts.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.Auth != nil {
				r.Use(opts.Auth)
			}

			r.Route("/cards", func(r chi.Router) {
				r.Post("/", h.Card.PostCard)
				r.Get("/", h.Card.GetCards)
				r.Get("/{card_id}", h.Card.GetCard)
				r.Put("/{card_id}", h.Card.PutCard)
				r.Patch("/{card_id}", h.Card.PatchCard)
				r.Delete("/{card_id}", h.Card.DeleteCard)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", h.Review.GetDueCards)
				r.Get("/all", h.Review.GetAllCards)
				r.Get("/count", h.Review.GetReviewCount)
				r.Put("/{card_id}/result", h.Review.SubmitReviewResult)
			})

			r.Route("/last-missed", func(r chi.Router) {
				r.Get("/", h.Review.GetLastMissed)
				r.Delete("/", h.Review.ClearLastMissed)
				r.Put("/{card_id}", h.Review.PutLastMissed)
				r.Delete("/{card_id}", h.Review.DeleteLastMissed)
			})

			r.Post("/sessions", h.Review.PostSession)
			r.Get("/stats", h.Stats.GetStats)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			if err := opts.Health(r.Context()); err != nil {
				middleware.GetLogger(r.Context()).Error("Health check failed", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

package http

import (
	"net/http"
	"time"

	"element-quiz-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterOptions carries what NewRouter needs beyond the handlers.
type RouterOptions struct {
	AllowedOrigins []string
	Log            *logger.Logger
}

// NewRouter mounts the REST API and the game websocket.
func NewRouter(api *APIHandler, ws *WSHandler, opts RouterOptions) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Get("/elements", api.ListElements)
		r.Get("/elements/{symbol}", api.GetElement)
		r.Get("/categories", api.ListCategories)
		r.Get("/achievements", api.ListAchievements)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", api.SignUp)
			r.Post("/signin", api.SignIn)
			r.Post("/signout", api.SignOut)
			r.Get("/oauth/{provider}", api.OAuthRedirect)
		})
	})
	return r
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				kv := []interface{}{
					"request_id", chimiddleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"latency", time.Since(start),
				}
				switch {
				case ww.Status() >= 500:
					log.Error("request completed", kv...)
				case ww.Status() >= 400:
					log.Warn("request completed", kv...)
				default:
					log.Debug("request completed", kv...)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

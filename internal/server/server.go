package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	v1 "github.com/madhava-poojari/mentorship-api/internal/api/v1"
	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/metrics"
)

type Server struct {
	cfg   *config.Config
	log   *slog.Logger
	api   *v1.API
	files http.Handler
}

// NewServer wires the v1 API and the upload file handler behind the shared
// middleware stack. files may be nil when uploads are not served here.
func NewServer(cfg *config.Config, log *slog.Logger, api *v1.API, files http.Handler) *Server {
	return &Server{cfg: cfg, log: log, api: api, files: files}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(s.cfg.WebURL),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", metrics.Handler())
	if s.files != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads", s.files))
	}
	r.Mount("/api/v1", s.api.Routes())
	return r
}

func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.BindAddr,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
}

// allowedOrigins splits WEB_URL on commas so staging and production front
// ends can share one deployment.
func allowedOrigins(webURL string) []string {
	var out []string
	for _, o := range strings.Split(webURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}

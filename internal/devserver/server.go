// Package devserver serves the site for local development: the host page,
// the compiled runtime and the notification icons as PNG.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/perifanotoque/perifa/pkg/perifa/icons"
	"github.com/perifanotoque/perifa/web"
)

// Icon query defaults.
const (
	DefaultIconSize = 64
	FaviconSize     = 32
)

// Server is the dev server.
type Server struct {
	cfg    *Config
	log    zerolog.Logger
	files  fs.FS
	icons  *icons.Cache
	router chi.Router

	httpServer *http.Server
}

// New creates a server for cfg. Files come from cfg.Dir, or from the
// embedded host page when Dir is empty.
func New(cfg *Config, log zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	files := web.FS()
	if cfg.Dir != "" {
		files = os.DirFS(cfg.Dir)
	}

	s := &Server{
		cfg:   cfg,
		log:   log,
		files: files,
		icons: icons.NewCacheWithSize(cfg.IconCacheSize),
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	r.Get("/icons/{kind}.png", s.handleIcon)
	r.Get("/favicon.png", s.handleFavicon)
	r.Get("/*", s.handleStatic)

	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"icon_cache":  s.icons.Len(),
		"serving_dir": s.cfg.Dir,
	})
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	kind, ok := icons.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	size := DefaultIconSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "size must be an integer", http.StatusBadRequest)
			return
		}
		size = n
	}

	s.writeIcon(w, r, kind, size, r.URL.Query().Get("color"))
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	s.writeIcon(w, r, icons.KindSuccess, FaviconSize, "")
}

func (s *Server) writeIcon(w http.ResponseWriter, r *http.Request, kind icons.Kind, size int, color string) {
	data, err := s.icons.PNG(kind, size, color)
	switch {
	case errors.Is(err, icons.ErrInvalidSize), errors.Is(err, icons.ErrInvalidColor):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.log.Error().Err(err).Str("kind", kind.String()).Msg("rasterizing icon")
		http.Error(w, "icon unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" {
		name = web.IndexFile
	}

	// Go's mime table lacks .wasm on some systems and streaming
	// instantiation rejects anything else.
	if path.Ext(name) == ".wasm" {
		w.Header().Set("Content-Type", "application/wasm")
	}
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFileFS(w, r, s.files, name)
}

// ListenAndServe serves on the configured port until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Str("dir", s.cfg.Dir).Msg("perifa dev server listening")
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

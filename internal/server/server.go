// Package server exposes board sessions over a JSON HTTP API.
//
// Every session wraps one composition engine. Mutations answer with the
// resulting snapshot; an edit the board's constraints reject is not an
// error but is reported with "applied": false, matching how the
// interactive board silently ignores invalid drags and resizes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/balancecoach/pkg/buildinfo"
	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/session"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves the board API.
type Server struct {
	store      session.Store
	logger     *log.Logger
	board      composition.Board
	engineOpts []composition.Option
	router     chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithBoard sets the board used for sessions that do not specify one.
func WithBoard(b composition.Board) Option { return func(s *Server) { s.board = b } }

// WithEngineOptions passes opts to every engine the server creates.
func WithEngineOptions(opts ...composition.Option) Option {
	return func(s *Server) { s.engineOpts = opts }
}

// New returns a server backed by store.
func New(store session.Store, opts ...Option) *Server {
	s := &Server{
		store:  store,
		logger: log.Default(),
		board:  composition.DefaultBoard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
	})

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(s.loadSession)
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Get("/svg", s.renderSession)

			r.Post("/reset", s.reset)
			r.Post("/mode", s.setMode)
			r.Post("/challenge", s.startChallenge)
			r.Post("/guides", s.cycleGuides)

			r.Post("/shapes", s.addShape)
			r.Route("/shapes/{shapeID}", func(r chi.Router) {
				r.Patch("/", s.updateShape)
				r.Delete("/", s.deleteShape)
				r.Post("/rotate", s.rotateShape)
				r.Post("/move", s.moveShape)
			})

			r.Post("/feedback", s.startFeedback)
			r.Get("/feedback", s.getFeedback)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

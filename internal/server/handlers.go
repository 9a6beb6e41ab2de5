package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/balancecoach/pkg/buildinfo"
	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
	"github.com/matzehuels/balancecoach/pkg/render"
)

var (
	errEmptyBoard = errors.New(errors.ErrCodeEmptyBoard, "add some shapes before asking for feedback")
	errImmutable  = errors.New(errors.ErrCodeImmutableShape, "challenge shapes cannot be edited")
)

// =============================================================================
// Request and Response Types
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type createSessionRequest struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Floor  float64 `json:"floor,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Seed   *uint64 `json:"seed,omitempty"`
}

type sessionResponse struct {
	ID       string               `json:"id"`
	Snapshot composition.Snapshot `json:"snapshot"`
}

type addShapeRequest struct {
	Kind  string   `json:"kind"`
	Size  *float64 `json:"size,omitempty"`
	Shade *int     `json:"shade,omitempty"`
}

type shapeResponse struct {
	Shape    composition.Shape    `json:"shape"`
	Snapshot composition.Snapshot `json:"snapshot"`
}

type updateShapeRequest struct {
	Size  *float64 `json:"size,omitempty"`
	Shade *int     `json:"shade,omitempty"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type mutationResponse struct {
	Applied  bool                 `json:"applied"`
	Snapshot composition.Snapshot `json:"snapshot"`
}

type feedbackResponse struct {
	Analyzing bool   `json:"analyzing"`
	Feedback  string `json:"feedback,omitempty"`
}

// =============================================================================
// Sessions
// =============================================================================

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	board := s.board
	if req.Width != 0 || req.Height != 0 {
		floor := req.Floor
		if floor == 0 {
			floor = composition.FloorHeight
		}
		b, err := composition.NewBoard(req.Width, req.Height, floor)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		board = b
	}

	opts := append([]composition.Option(nil), s.engineOpts...)
	if req.Mode != "" {
		m, err := composition.ParseMode(req.Mode)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts = append(opts, composition.WithMode(m))
	}
	if req.Seed != nil {
		opts = append(opts, composition.WithSeed(*req.Seed))
	}

	sess, err := s.store.Create(r.Context(), composition.New(board, opts...))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "board", board)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Snapshot: sess.Snapshot()})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Snapshot: sess.Snapshot()})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("session deleted", "id", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderSession(w http.ResponseWriter, r *http.Request) {
	svg := render.RenderSVG(sessionFrom(r).Snapshot())
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// =============================================================================
// Board Lifecycle
// =============================================================================

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *composition.Engine) (bool, error) {
		e.Reset()
		return true, nil
	})
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(e *composition.Engine) (bool, error) {
		if err := e.SetMode(composition.Mode(req.Mode)); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Server) startChallenge(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *composition.Engine) (bool, error) {
		e.StartChallenge()
		return true, nil
	})
}

func (s *Server) cycleGuides(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *composition.Engine) (bool, error) {
		e.CycleGuides()
		return true, nil
	})
}

// =============================================================================
// Shapes
// =============================================================================

func (s *Server) addShape(w http.ResponseWriter, r *http.Request) {
	var req addShapeRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	kind, err := composition.ParseKind(req.Kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Size != nil {
		if err := errors.ValidateGridSize(*req.Size, composition.GridUnit, composition.MinSize, composition.MaxSize); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	sess := sessionFrom(r)
	var (
		shape composition.Shape
		snap  composition.Snapshot
	)
	err = sess.Do(func(e *composition.Engine) error {
		size, shade := e.ControlSize(), e.ControlShade()
		if req.Size != nil {
			size = *req.Size
		}
		if req.Shade != nil {
			shade = *req.Shade
		}
		var err error
		if shape, err = e.AddShape(kind, size, shade); err != nil {
			return err
		}
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeResponse{Shape: shape, Snapshot: snap})
}

func (s *Server) updateShape(w http.ResponseWriter, r *http.Request) {
	var req updateShapeRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Size != nil {
		if err := errors.ValidateGridSize(*req.Size, composition.GridUnit, composition.MinSize, composition.MaxSize); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.Shade != nil {
		if err := errors.ValidateShade(*req.Shade); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.mutateShape(w, r, func(e *composition.Engine, id string) bool {
		applied := false
		if req.Size != nil && e.Resize(id, *req.Size) {
			applied = true
		}
		if req.Shade != nil && e.SetShade(id, *req.Shade) {
			applied = true
		}
		return applied
	})
}

func (s *Server) deleteShape(w http.ResponseWriter, r *http.Request) {
	s.mutateShape(w, r, func(e *composition.Engine, id string) bool { return e.Delete(id) })
}

func (s *Server) rotateShape(w http.ResponseWriter, r *http.Request) {
	s.mutateShape(w, r, func(e *composition.Engine, id string) bool { return e.Rotate(id) })
}

func (s *Server) moveShape(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutateShape(w, r, func(e *composition.Engine, id string) bool { return e.Move(id, req.X, req.Y) })
}

// mutate runs fn against the session engine and answers with the result.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(e *composition.Engine) (bool, error)) {
	var resp mutationResponse
	err := sessionFrom(r).Do(func(e *composition.Engine) error {
		applied, err := fn(e)
		if err != nil {
			return err
		}
		resp = mutationResponse{Applied: applied, Snapshot: e.Snapshot()}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// mutateShape resolves {shapeID} before running fn. Unknown shapes are 404
// and challenge shapes 409; everything else fn leaves unchanged is a
// successful no-op. The selection and control panel are left alone.
func (s *Server) mutateShape(w http.ResponseWriter, r *http.Request, fn func(e *composition.Engine, id string) bool) {
	id := chi.URLParam(r, "shapeID")
	s.mutate(w, r, func(e *composition.Engine) (bool, error) {
		shape, ok := e.Shape(id)
		if !ok {
			return false, errors.New(errors.ErrCodeShapeNotFound, "shape %q not found", id)
		}
		if shape.Challenge {
			return false, errImmutable
		}
		return fn(e, id), nil
	})
}

// =============================================================================
// Feedback
// =============================================================================

func (s *Server) startFeedback(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	snap := sess.Snapshot()
	if len(snap.Shapes) == 0 {
		s.writeError(w, r, errEmptyBoard)
		return
	}
	// The analysis outlives this request; clients poll GET /feedback.
	sess.Analyzer().Start(context.WithoutCancel(r.Context()), snap)
	writeJSON(w, http.StatusAccepted, feedbackResponse{Analyzing: true})
}

func (s *Server) getFeedback(w http.ResponseWriter, r *http.Request) {
	a := sessionFrom(r).Analyzer()
	if t := a.Current(); t != nil && r.URL.Query().Get("wait") != "" {
		select {
		case <-t.Done():
		case <-r.Context().Done():
			return
		}
	}
	text, _ := a.Latest()
	writeJSON(w, http.StatusOK, feedbackResponse{Analyzing: a.Analyzing(), Feedback: text})
}

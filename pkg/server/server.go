// Package server exposes the hotel configuration form over HTTP. It keeps no
// state between requests: every submission carries the whole form and every
// response is regenerated from it.
package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/export"
	"github.com/goliatone/go-hotelconfig/pkg/generator"
	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelconfig/pkg/schema"
	"github.com/goliatone/go-hotelconfig/pkg/seed"
	"github.com/goliatone/go-hotelconfig/pkg/validation"
)

// maxFormBytes caps submitted bodies.
const maxFormBytes = 1 << 20

// outputField carries the generated document back on download.
const outputField = "output"

// Option configures a Server.
type Option func(*Server)

// WithRenderer overrides the page renderer.
func WithRenderer(r *vanilla.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithGenerator overrides the generate pipeline.
func WithGenerator(g *generator.Generator) Option {
	return func(s *Server) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithSeed sets how the initial page is filled. The function is called per
// request and must return a fresh form.
func WithSeed(fn func() *model.Form) Option {
	return func(s *Server) {
		if fn != nil {
			s.seed = fn
		}
	}
}

// WithFilename overrides the download file name.
func WithFilename(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.filename = name
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server serves the form page, its actions and the download endpoint.
type Server struct {
	router    chi.Router
	renderer  *vanilla.Renderer
	generator *generator.Generator
	seed      func() *model.Form
	filename  string
	logger    *zap.Logger
}

// New wires the routes.
func New(options ...Option) (*Server, error) {
	s := &Server{
		seed:     func() *model.Form { return seed.Default() },
		filename: document.DefaultFilename,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.renderer == nil {
		r, err := vanilla.New(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.renderer = r
	}
	if s.generator == nil {
		s.generator = generator.New(generator.WithLogger(s.logger))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleAction)
	r.Post("/download", s.handleDownload)
	r.Get("/schema", s.handleSchema)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, s.view(s.seed(), validation.Result{Valid: true}))
}

// read decodes a submission and notes fields carrying markup.
func (s *Server) read(w http.ResponseWriter, r *http.Request) (*model.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	sub, err := readForm(r)
	if err != nil {
		return nil, err
	}
	if len(sub.markup) > 0 {
		s.logger.Info("submitted fields contain markup",
			zap.Strings("fields", sub.markup),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	return sub.form, nil
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	form, err := s.read(w, r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	act, err := parseAction(r.PostForm.Get("action"))
	if err != nil {
		s.badRequest(w, err)
		return
	}

	if act.kind != actionGenerate {
		if err := act.apply(form); err != nil {
			s.badRequest(w, err)
			return
		}
		s.renderPage(w, r, http.StatusOK, s.view(form, validation.Result{Valid: true}))
		return
	}

	out, err := s.generator.Generate(r.Context(), form)
	view := s.view(form, out.Validation)
	switch {
	case errors.Is(err, validation.ErrInvalid):
		s.renderPage(w, r, http.StatusUnprocessableEntity, view)
	case err != nil:
		s.logger.Error("generate failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		view.Output = string(out.JSON)
		s.renderPage(w, r, http.StatusOK, view)
	}
}

// handleDownload sends the document shown on the page when the submission
// carries it, so copy, save-as and download export the same text. Without it
// the document is generated from the posted fields.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	form, err := s.read(w, r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	raw := []byte(normalizeText(r.PostForm.Get(outputField)))
	if len(raw) > 0 {
		if err := schema.Check(raw); err != nil {
			s.badRequest(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
	} else {
		out, err := s.generator.Generate(r.Context(), form)
		if errors.Is(err, validation.ErrInvalid) {
			s.renderPage(w, r, http.StatusUnprocessableEntity, s.view(form, out.Validation))
			return
		}
		if err != nil {
			s.logger.Error("generate failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		raw = out.JSON
	}

	payload := export.NewPayload(string(raw))
	payload.Filename = s.filename
	payload = payload.Normalize()

	w.Header().Set("Content-Type", payload.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": payload.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		s.logger.Warn("write download failed", zap.Error(err))
	}
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	raw, err := schema.JSON()
	if err != nil {
		s.logger.Error("encode schema failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (s *Server) view(form *model.Form, result validation.Result) vanilla.View {
	view := vanilla.NewView(form, result)
	view.Filename = s.filename
	return view
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, view vanilla.View) {
	body, err := s.renderer.Render(r.Context(), view)
	if err != nil {
		s.logger.Error("render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.logger.Info("rejected submission", zap.Error(err))
	http.Error(w, err.Error(), http.StatusBadRequest)
}

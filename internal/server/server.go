package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dotnot-labs/regui/internal/catalog"
	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/dotnot-labs/regui/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

//go:embed pages/index.html
var indexPage []byte

// Server serves the listing page.
type Server struct {
	variant    render.Variant
	httpClient *http.Client
	entries    []catalog.Entry
	log        *logrus.Entry
}

// Option configures a Server.
type Option func(*Server)

// WithHTTPClient sets the client used for catalog requests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Server) {
		s.httpClient = c
	}
}

// WithCatalog makes the server answer GET /registries and /registries/
// with entries.
func WithCatalog(entries []catalog.Entry) Option {
	return func(s *Server) {
		s.entries = entries
	}
}

// New creates a Server rendering v.
func New(v render.Variant, opts ...Option) *Server {
	s := &Server{
		variant: v,
		log:     logging.For(logging.CatServe),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handlePage)
	r.Get("/fragment", s.handleFragment)
	if s.entries != nil {
		r.Get("/registries", s.handleCatalog)
		r.Get("/registries/", s.handleCatalog)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, err := html.Parse(bytes.NewReader(indexPage))
	if err != nil {
		http.Error(w, fmt.Sprintf("page parse error: %v", err), http.StatusInternalServerError)
		return
	}
	target := dom.Find(doc, dom.ListingID)
	if target == nil {
		http.Error(w, "page has no listing container", http.StatusInternalServerError)
		return
	}

	s.populate(r, dom.Attach(target))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Render(w, doc); err != nil {
		s.log.WithError(err).Warn("writing page")
	}
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	c := dom.NewContainer(dom.ListingID)
	s.populate(r, c)

	out, err := c.OuterHTML()
	if err != nil {
		http.Error(w, fmt.Sprintf("render error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.entries); err != nil {
		s.log.WithError(err).Warn("writing catalog")
	}
}

func (s *Server) populate(r *http.Request, target *dom.Container) render.State {
	opts := []render.Option{render.WithPageURL(pageURL(r))}
	if s.httpClient != nil {
		opts = append(opts, render.WithHTTPClient(s.httpClient))
	}
	state := render.NewPipeline(s.variant, opts...).Run(r.Context(), target)
	s.log.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"state":      state,
	}).Debug("listing rendered")
	return state
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Debug("request")
	})
}

// pageURL reconstructs the absolute URL the client requested.
func pageURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

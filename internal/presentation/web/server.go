// Package web serves the reader page over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tesso57/feedreader/internal/application/usecase"
	"github.com/tesso57/feedreader/internal/domain/subscription"
	"github.com/tesso57/feedreader/internal/presentation/page"
)

// Loader starts a feed load and reports completion through done.
type Loader interface {
	LoadFeed(ctx context.Context, index int, done func(usecase.LoadResult))
}

// FeedLister lists configured feeds.
type FeedLister interface {
	List() ([]subscription.Source, error)
}

// Server exposes the page and its actions.
type Server struct {
	Page   *page.Page
	Loader Loader
	Feeds  FeedLister
	Logger *slog.Logger
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /menu/toggle", s.handleToggleMenu)
	mux.HandleFunc("POST /feeds/{index}/load", s.handleLoad)
	mux.HandleFunc("GET /feeds", s.handleFeeds)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger().Info("serving feed reader", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	html, err := s.Page.HTML()
	if err != nil {
		s.logger().Error("render page", "err", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleToggleMenu(w http.ResponseWriter, r *http.Request) {
	s.Page.ToggleMenu()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid feed index", http.StatusBadRequest)
		return
	}

	s.Page.HideMenu()
	done := make(chan usecase.LoadResult, 1)
	s.Loader.LoadFeed(context.WithoutCancel(r.Context()), index, func(res usecase.LoadResult) {
		done <- res
	})

	select {
	case res := <-done:
		if errors.Is(res.Err, usecase.ErrFeedIndex) {
			http.Error(w, res.Err.Error(), http.StatusNotFound)
			return
		}
	case <-r.Context().Done():
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type feedJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

func (s *Server) handleFeeds(w http.ResponseWriter, _ *http.Request) {
	sources, err := s.Feeds.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]feedJSON, len(sources))
	for i, src := range sources {
		out[i] = feedJSON{Index: i, Name: src.Name, URL: src.URL}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger().Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

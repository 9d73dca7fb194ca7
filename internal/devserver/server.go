// Package devserver is an in-memory repositories API used by `repolist serve`
// and by tests. It assigns uuid ids, starts likes at zero and answers 404
// for unknown ids.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/five82/repolist/internal/api"
)

// Options configure a Server.
type Options struct {
	Logger *slog.Logger
	// Seed is loaded into the server before it starts answering.
	Seed []api.Repository
	// NewID overrides id generation; defaults to random uuids.
	NewID func() api.ID
}

// Server is an in-memory implementation of the repositories API.
type Server struct {
	mu     sync.Mutex
	repos  []api.Repository
	logger *slog.Logger
	newID  func() api.ID
}

// New builds a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() api.ID { return api.ID(uuid.NewString()) }
	}
	s := &Server{logger: logger, newID: newID}
	for _, r := range opts.Seed {
		s.repos = append(s.repos, r.Clone())
	}
	return s
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	r.Methods(http.MethodGet).Path("/repositories").HandlerFunc(s.listRepositories)
	r.Methods(http.MethodPost).Path("/repositories").HandlerFunc(s.createRepository)
	r.Methods(http.MethodPost).Path("/repositories/{id}/like").HandlerFunc(s.likeRepository)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.logger.Info("dev server listening", "addr", ln.Addr().String())
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Info("handled",
			"method", r.Method,
			"url", r.URL.String(),
			"status", m.Code,
			"duration", m.Duration,
			"request_id", r.Header.Get(api.RequestIDHeader),
		)
	})
}

func (s *Server) listRepositories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]api.Repository, len(s.repos))
	for i, r := range s.repos {
		out[i] = r.Clone()
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createRepository(w http.ResponseWriter, r *http.Request) {
	var payload api.NewRepository
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}
	techs := payload.Techs
	if techs == nil {
		techs = []string{}
	}
	created := api.Repository{
		ID:    s.newID(),
		Title: payload.Title,
		URL:   payload.URL,
		Techs: techs,
		Likes: 0,
	}

	s.mu.Lock()
	s.repos = append(s.repos, created.Clone())
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) likeRepository(w http.ResponseWriter, r *http.Request) {
	id := api.ID(mux.Vars(r)["id"])

	s.mu.Lock()
	var updated api.Repository
	found := false
	for i := range s.repos {
		if s.repos[i].ID == id {
			s.repos[i].Likes++
			updated = s.repos[i].Clone()
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "repository not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

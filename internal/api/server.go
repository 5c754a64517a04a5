package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"contactbook/internal/contact"
	"contactbook/internal/directory"
	"contactbook/internal/logging"
)

// Options configures a Server.
type Options struct {
	// Order is the short name field priority; nil means schema order.
	Order  []contact.Field
	Token  string
	Logger *slog.Logger
}

// Server answers read-only queries against a directory snapshot.
type Server struct {
	dir    *directory.Directory
	order  []contact.Field
	token  string
	logger *slog.Logger
}

// NewServer snapshots records. Later changes to the records do not show.
func NewServer(records []*contact.Record, opts Options) *Server {
	clones := make([]*contact.Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			clones = append(clones, r.Clone())
		}
	}
	order := opts.Order
	if len(order) == 0 {
		order = contact.Fields()
	}
	return &Server{
		dir:    directory.Load(clones, nil),
		order:  order,
		token:  opts.Token,
		logger: logging.NewComponentLogger(opts.Logger, "api"),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.token))
		r.Get("/contacts", s.handleListContacts())
		r.Get("/contacts/{id}", s.handleGetContact())
		r.Get("/duplicates", s.handleDuplicates())
	})

	return r
}

// ListenAndServe serves on bind until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, bind string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("api server listening",
		logging.String("address", ln.Addr().String()),
		logging.Int("contacts", s.dir.Len()),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

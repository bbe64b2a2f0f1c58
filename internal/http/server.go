// Package http runs the keep-alive listener. Free hosting tiers put the bot
// to sleep unless something answers HTTP on the assigned port, and the
// platform health check probes /healthz.
package http

import (
	"context"
	"net/http"
	"time"

	applog "github.com/danylakopych/familybudgetbot/internal/log"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	srv *http.Server
	log *applog.Logger
}

func NewServer(port string, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Server{
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      routes(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		log: logger.WithComponent(applog.ComponentHTTP),
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	s.log.Info("keep-alive listener started", "addr", s.srv.Addr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Бот працює!"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

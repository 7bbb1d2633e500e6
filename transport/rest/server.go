package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, column int) (*entity.Session, connectfour.MoveOutcome, error)
	RestartSession(ctx context.Context, id string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]entity.Result, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame

	router *mux.Router
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,

		router: mux.NewRouter(),
	}

	server.router.HandleFunc("/ping", server.pingHandler).Methods(http.MethodGet)

	server.router.HandleFunc("/sessions", server.createSession).Methods(http.MethodPost)
	server.router.HandleFunc("/sessions/{id}", server.getSession).Methods(http.MethodGet)
	server.router.HandleFunc("/sessions/{id}", server.deleteSession).Methods(http.MethodDelete)
	server.router.HandleFunc("/sessions/{id}/moves", server.makeMove).Methods(http.MethodPost)
	server.router.HandleFunc("/sessions/{id}/restart", server.restartSession).Methods(http.MethodPost)
	server.router.HandleFunc("/sessions/{id}/results", server.listResults).Methods(http.MethodGet)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

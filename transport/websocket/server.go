package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

var errClientGone = errors.New("client is disconnected")

type uGame interface {
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, column int) (*entity.Session, connectfour.MoveOutcome, error)
	RestartSession(ctx context.Context, id string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

type Server struct {
	logger *slog.Logger
	uGame  uGame
	hub    *Hub

	upgrader websocket.Upgrader
	router   *mux.Router
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, hub *Hub) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		hub:    hub,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the board UI is served from its own origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		router:   mux.NewRouter(),
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionMove] = server.handleMove
	server.handlers[actionSessionRestart] = server.handleRestart

	server.router.HandleFunc("/ws/sessions/{id}", server.serveSession).Methods(http.MethodGet)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts WebSocket server. Open connections are closed when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveSession upgrades the connection and streams the session to the client
// until either side goes away.
func (that *Server) serveSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log := that.logger.With("method", "serveSession", "session", sessionID)

	if _, err := that.uGame.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			http.Error(w, apperror.ErrSessionNotFound.Error(), http.StatusNotFound)
			return
		}

		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	c := newClient(sessionID, conn)
	that.hub.subscribe(c)
	go c.writePump()

	log.Info("WebSocket connection established")

	// the state is read after subscribing so no update between the two is missed
	session, err := that.uGame.GetSession(ctx, sessionID)
	if err == nil {
		err = that.send(c, actionSessionState, sessionPayload(session))
	}
	if err != nil {
		log.Error("failed to send session state", "error", err)
	}

	that.readPump(ctx, c)

	log.Info("WebSocket connection closed")
}

// readPump - processes messages from the client.
func (that *Server) readPump(ctx context.Context, c *client) {
	log := that.logger.With("method", "readPump", "session", c.sessionID)

	defer that.hub.unsubscribe(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			_ = that.sendError(c, "", "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			_ = that.sendError(c, message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

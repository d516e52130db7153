package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// SubscribeFunc starts a subscription whose updates are handed to push.
type SubscribeFunc func(ctx context.Context, push func(StreamFrame)) (unsubscribe func(), err error)

// StreamServer upgrades availability requests to websockets. Each frame carries the
// complete slot list, so when a client falls behind only the newest frame is kept.
type StreamServer struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamServer allows any origin when allowedOrigins is empty.
// Requests without an Origin header are always accepted.
func NewStreamServer(allowedOrigins []string, logger *slog.Logger) *StreamServer {
	return &StreamServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Native clients send no Origin header.
				if len(allowedOrigins) == 0 || origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger.With("component", "availability_stream"),
	}
}

func (s *StreamServer) Serve(w http.ResponseWriter, r *http.Request, subscribe SubscribeFunc) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	send := make(chan []byte, 1)
	push := func(f StreamFrame) {
		data, err := json.Marshal(f)
		if err != nil {
			return
		}
		for {
			select {
			case send <- data:
				return
			default:
			}
			// Drop the stale frame the writer has not picked up yet.
			select {
			case <-send:
			default:
			}
		}
	}

	unsubscribe, err := subscribe(ctx, push)
	if err != nil {
		data, _ := json.Marshal(StreamFrame{Type: FrameError, Error: err.Error()})
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteMessage(websocket.TextMessage, data)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscription rejected"))
		conn.Close()
		return
	}
	defer unsubscribe()

	go s.writePump(ctx, conn, send)
	s.readPump(conn) // blocks until the client goes away
}

func (s *StreamServer) readPump(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Clients have nothing to say; reading only detects close and drives pongs.
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *StreamServer) writePump(ctx context.Context, conn *websocket.Conn, send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/auth"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	JWTSecret      string
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				log.Warn().Str("origin", origin).Msg("[WS] Origin rejected")
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the connection
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("[WS] Upgrade error")
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	// Keep-alive pinger. WriteControl is safe alongside WriteJSON.
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// 1. Wait for the init frame carrying the session token
	session, ok := h.initialize(conn)
	if !ok {
		conn.Close()
		return
	}

	state, err := session.RequestState()
	if err != nil {
		writeInitError(conn, domain.ErrorCode(err), "Session closed")
		conn.Close()
		return
	}
	h.ConnManager.AddConnection(session.ID, conn)
	log.Info().Str("session", session.ID).Msg("[WS] Connection attached to session")
	h.ConnManager.SendMessage(session.ID, state)

	defer func() {
		log.Info().Str("session", session.ID).Msg("[WS] Connection closed")
		h.ConnManager.RemoveConnectionIfMatching(session.ID, conn)
	}()

	// 2. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Str("session", session.ID).Err(err).Msg("[WS] Client disconnected unexpectedly")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("[WS] Invalid message format")
			h.sendError(session.ID, "INVALID_MESSAGE", "Invalid message format")
			continue
		}

		if !h.ConnManager.IsCurrentConnection(session.ID, conn) {
			return
		}
		if !h.processMessage(session, msg) {
			log.Info().Str("session", session.ID).Msg("[WS] Session closed, dropping connection")
			return
		}
	}
}

func (h *Handler) initialize(conn *websocket.Conn) (*game.GameSession, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Debug().Err(err).Msg("[WS] Read error during init")
		return nil, false
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.Token == "" {
		log.Debug().Msg("[WS] Missing initialization or token")
		writeInitError(conn, "INIT_REQUIRED", "First message must be init with a session token")
		return nil, false
	}

	claims, err := auth.ValidateSessionToken(message.Token, h.JWTSecret)
	if err != nil {
		log.Debug().Err(err).Msg("[WS] Invalid token during init")
		writeInitError(conn, "INVALID_TOKEN", "Invalid token or session expired")
		return nil, false
	}

	session, exists := h.SessionManager.GetSession(claims.SessionID)
	if !exists {
		writeInitError(conn, "SESSION_NOT_FOUND", "Session not found")
		return nil, false
	}
	return session, true
}

// processMessage routes specific actions. It returns false once the session is gone.
func (h *Handler) processMessage(session *game.GameSession, msg domain.ClientMessage) bool {
	if current, exists := h.SessionManager.GetSession(session.ID); !exists || current != session {
		h.sendError(session.ID, domain.ErrSessionClosed.Code(), domain.ErrSessionClosed.Error())
		return false
	}

	var err error
	switch msg.Type {
	case "drop":
		if msg.Column == nil {
			h.sendError(session.ID, "MISSING_COLUMN", "drop requires a column")
			return true
		}
		_, err = session.HandleDrop(*msg.Column)

	case "restart":
		err = session.Restart()

	case "play_again":
		err = session.PlayAgain()

	case "state":
		var state domain.ServerMessage
		if state, err = session.RequestState(); err == nil {
			h.ConnManager.SendMessage(session.ID, state)
		}

	default:
		h.sendError(session.ID, "UNKNOWN_TYPE", "Unknown message type: "+msg.Type)
		return true
	}

	if err != nil {
		h.sendError(session.ID, domain.ErrorCode(err), err.Error())
		return !errors.Is(err, domain.ErrSessionClosed)
	}
	return true
}

func (h *Handler) sendError(sessionID, code, message string) {
	h.ConnManager.SendMessage(sessionID, domain.ErrorMessage{Type: "error", Code: code, Message: message})
}

func writeInitError(conn *websocket.Conn, code, message string) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteJSON(domain.ErrorMessage{Type: "error", Code: code, Message: message})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
	"github.com/iamasit07/connect-four/pkg/auth"
	"github.com/iamasit07/connect-four/pkg/uid"
	"github.com/rs/zerolog/log"
)

type SessionHandler struct {
	SessionManager    *game.SessionManager
	JWTSecret         string
	TokenTTL          time.Duration
	DefaultDifficulty bot.Difficulty
}

func NewSessionHandler(sm *game.SessionManager, jwtSecret string, tokenTTL time.Duration, defaultDifficulty bot.Difficulty) *SessionHandler {
	return &SessionHandler{
		SessionManager:    sm,
		JWTSecret:         jwtSecret,
		TokenTTL:          tokenTTL,
		DefaultDifficulty: defaultDifficulty,
	}
}

type createSessionRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

type createSessionResponse struct {
	SessionID string            `json:"sessionId"`
	Token     string            `json:"token"`
	State     game.SessionState `json:"state"`
}

// CreateSession starts a new in-memory game and returns the token the socket attaches with
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty := h.DefaultDifficulty
	if req.Difficulty != "" {
		difficulty = bot.ParseDifficulty(req.Difficulty)
	}

	session := h.SessionManager.CreateSession(mode, difficulty)
	token, err := auth.GenerateSessionToken(session.ID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("[HTTP] Failed to sign session token")
		h.SessionManager.RemoveSession(session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, createSessionResponse{
		SessionID: session.ID,
		Token:     token,
		State:     session.State(),
	})
}

// GetSession returns the state of the session bound to the caller's token
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	if !uid.IsSessionID(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if sessionID != c.GetString(middleware.SessionIDKey) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token does not grant access to this session"})
		return
	}

	session, exists := h.SessionManager.GetSession(sessionID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, session.State())
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "http-test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *game.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := game.NewSessionManager(nil, game.Options{BotThinkDelay: time.Hour})
	router := NewRouter(RouterDeps{
		Sessions:       NewSessionHandler(sm, testSecret, time.Minute, bot.DifficultyMedium),
		Bot:            NewBotHandler(game.NewService(sm, 1)),
		AllowedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      testSecret,
	})
	return router, sm
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateAndGetSession(t *testing.T) {
	router, sm := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{"mode": "computer", "difficulty": "hard"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created createSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, game.ModeComputer, created.State.Mode)
	assert.Equal(t, bot.DifficultyHard, created.State.Difficulty)
	assert.Equal(t, "Charles", created.State.Opponent)
	assert.Equal(t, game.PhaseAwaitingHuman, created.State.Phase)
	assert.Equal(t, 1, sm.Count())

	t.Run("get with token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/sessions/"+created.SessionID, nil,
			map[string]string{"Authorization": "Bearer " + created.Token})
		require.Equal(t, http.StatusOK, w.Code)

		var state game.SessionState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, created.SessionID, state.SessionID)
		assert.Equal(t, domain.TurnTime, state.Game.TimeRemaining)
	})

	t.Run("without token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/sessions/"+created.SessionID, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for another session", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/sessions/"+uid.NewSessionID(), nil,
			map[string]string{"Authorization": "Bearer " + created.Token})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/sessions/other", nil,
			map[string]string{"Authorization": "Bearer " + created.Token})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("removed session", func(t *testing.T) {
		require.NoError(t, sm.RemoveSession(created.SessionID))
		w := doJSON(t, router, http.MethodGet, "/api/sessions/"+created.SessionID, nil,
			map[string]string{"Authorization": "Bearer " + created.Token})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateSessionDefaults(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created createSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, game.ModeLocal, created.State.Mode)
	assert.Empty(t, created.State.Opponent)

	w = doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{"mode": "online"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestMove(t *testing.T) {
	router, _ := newTestRouter(t)

	board := make([][]int, domain.Rows)
	for r := range board {
		board[r] = make([]int, domain.Columns)
	}
	board[5][0], board[5][1], board[5][2] = 2, 2, 2
	board[4][0], board[4][1] = 1, 1
	board[5][6] = 1

	t.Run("winning move", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/bot/move", gin.H{"board": board, "player": 2, "difficulty": "hard"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res botMoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 3, res.Column)
		assert.Positive(t, res.Nodes)
	})

	t.Run("invalid player", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/bot/move", gin.H{"board": board, "player": 5}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_PLAYER")
	})

	t.Run("floating disk", func(t *testing.T) {
		bad := make([][]int, domain.Rows)
		for r := range bad {
			bad[r] = make([]int, domain.Columns)
		}
		bad[0][0] = 1
		w := doJSON(t, router, http.MethodPost, "/api/bot/move", gin.H{"board": bad, "player": 1}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_BOARD")
	})

	t.Run("already decided", func(t *testing.T) {
		decided := make([][]int, domain.Rows)
		for r := range decided {
			decided[r] = make([]int, domain.Columns)
		}
		copy(decided[5], []int{1, 1, 1, 1, 2, 2, 2})
		w := doJSON(t, router, http.MethodPost, "/api/bot/move", gin.H{"board": decided, "player": 2, "difficulty": "hard"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_BOARD")
	})

	t.Run("missing board", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/bot/move", gin.H{"player": 1}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
